package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/zhukovaskychina/xcolstore/conf"
	"github.com/zhukovaskychina/xcolstore/logger"
	"github.com/zhukovaskychina/xcolstore/meta"
	"github.com/zhukovaskychina/xcolstore/storage/memory"
	"github.com/zhukovaskychina/xcolstore/storage/page"
)

func main() {
	configPath := flag.String("config", "", "path to an ini or toml config file")
	flag.Parse()

	cfg := conf.NewCfg()
	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			fmt.Printf("failed to load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	if err := logger.InitLogger(cfg.LogConfig()); err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}

	kind, err := cfg.StoreKind()
	if err != nil {
		logger.Fatalf("bad config: %v", err)
	}

	pageCfg := page.PageConfig{
		Strategy: kind,
		TaskID:   1,
		Manager:  memory.NewManager(cfg.PageMemoryLimit),
	}

	fmt.Println("=== Column Page Demo ===")
	fmt.Printf("storage strategy: %s\n", kind)

	demoStringColumn(pageCfg)
	demoDecimalColumn(pageCfg)
	demoComplexChild(pageCfg)
}

func demoStringColumn(cfg page.PageConfig) {
	fmt.Println("\n--- string column, append path ---")

	spec := meta.NewColumnSpec("city", meta.DataTypeString)
	p, err := page.NewVarLengthColumnPage(spec, meta.DataTypeString, 4, cfg)
	if err != nil {
		logger.Fatalf("create page: %v", err)
	}
	defer p.Release()

	for i, city := range []string{"Moscow", "Beijing", "Berlin", "Quito"} {
		if err := p.AppendBytes(i, []byte(city)); err != nil {
			logger.Fatalf("append row %d: %v", i, err)
		}
	}

	flat, err := p.LVFlattenedBytes()
	if err != nil {
		logger.Fatalf("flatten: %v", err)
	}
	fmt.Printf("rows=%d totalLength=%d lvFlattened=%d bytes\n", p.RowCount(), p.TotalLength(), len(flat))

	compressed, err := page.CompressedLVFlattenedBytes(p, page.SnappyCompressor{})
	if err != nil {
		logger.Fatalf("compress: %v", err)
	}
	fmt.Printf("snappy compressed=%d bytes\n", len(compressed))

	sum, err := page.Checksum(p)
	if err != nil {
		logger.Fatalf("checksum: %v", err)
	}
	fmt.Printf("checksum=%016x\n", sum)
}

func demoDecimalColumn(cfg page.PageConfig) {
	fmt.Println("\n--- decimal column, bulk decode path ---")

	spec := meta.NewDecimalColumnSpec("amount", 9, 2)
	converter := meta.NewDecimalConverter(spec.Precision, spec.Scale)

	var stream []byte
	for _, s := range []string{"10.50", "-3.25", "9999999.99"} {
		v, _ := decimal.NewFromString(s)
		stream = append(stream, converter.EncodeValue(v)...)
	}

	p, err := page.NewDecimalColumnPage(spec, stream, cfg)
	if err != nil {
		logger.Fatalf("decode decimal page: %v", err)
	}
	defer p.Release()

	fmt.Printf("fixed width=%d rows=%d\n", converter.Size(), p.RowCount())
	for i := 0; i < p.RowCount(); i++ {
		raw, _ := p.GetBytes(i)
		fmt.Printf("row %d = %s\n", i, converter.DecodeValue(raw))
	}
}

func demoComplexChild(cfg page.PageConfig) {
	fmt.Println("\n--- complex child column, compact LV ---")

	spec := meta.NewColumnSpec("tags", meta.DataTypeByteArray)
	p, err := page.NewVarLengthColumnPage(spec, meta.DataTypeByteArray, 3, cfg)
	if err != nil {
		logger.Fatalf("create page: %v", err)
	}
	defer p.Release()

	for i, tag := range [][]byte{[]byte("red"), []byte("green"), []byte("blue")} {
		if err := p.AppendBytes(i, tag); err != nil {
			logger.Fatalf("append row %d: %v", i, err)
		}
	}

	flat, err := p.ComplexChildrenLVFlattenedBytes()
	if err != nil {
		logger.Fatalf("flatten: %v", err)
	}
	fmt.Printf("rows=%d compactFlattened=%d bytes\n", p.RowCount(), len(flat))

	parent, err := p.ComplexParentFlattenedBytes()
	if err != nil {
		logger.Fatalf("parent flatten: %v", err)
	}
	fmt.Printf("parentFlattened=%q\n", string(parent))
}
