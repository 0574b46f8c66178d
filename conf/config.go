package conf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/ini.v1"

	"github.com/zhukovaskychina/xcolstore/logger"
	"github.com/zhukovaskychina/xcolstore/storage/page"
)

// Cfg holds the process configuration for the column store. The page storage
// strategy is process-wide and fixed at page construction time.
type Cfg struct {
	Raw *ini.File

	AppName string
	DataDir string

	// logs
	LogError string `default:"/var/log/xcolstore/error.log" json:"log_error,omitempty"`
	LogInfos string `default:"/var/log/xcolstore/store.log" json:"log_infos,omitempty"`
	LogLevel string `default:"info" json:"log_level,omitempty"`

	// column page storage
	PageStoreStrategy string `default:"heap" json:"page_store_strategy,omitempty"`
	PageMemoryLimit   int64  `default:"0" json:"page_memory_limit,omitempty"`
}

// NewCfg returns a config populated with defaults
func NewCfg() *Cfg {
	return &Cfg{
		Raw:               ini.Empty(),
		AppName:           "xcolstore",
		DataDir:           "data",
		LogError:          "/var/log/xcolstore/error.log",
		LogInfos:          "/var/log/xcolstore/store.log",
		LogLevel:          "info",
		PageStoreStrategy: "heap",
		PageMemoryLimit:   0,
	}
}

// Load reads configuration from an ini or toml file, selected by extension
func (c *Cfg) Load(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return c.loadToml(path)
	default:
		return c.loadIni(path)
	}
}

func (c *Cfg) loadIni(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return err
	}
	c.Raw = f

	section := f.Section("colstore")
	c.AppName = section.Key("app_name").MustString(c.AppName)
	c.DataDir = section.Key("data_dir").MustString(c.DataDir)
	c.PageStoreStrategy = section.Key("page_store_strategy").MustString(c.PageStoreStrategy)
	c.PageMemoryLimit = section.Key("page_memory_limit").MustInt64(c.PageMemoryLimit)

	logs := f.Section("logs")
	c.LogError = logs.Key("log_error").MustString(c.LogError)
	c.LogInfos = logs.Key("log_infos").MustString(c.LogInfos)
	c.LogLevel = logs.Key("log_level").MustString(c.LogLevel)

	logger.Debugf("loaded ini config from %s", path)
	return nil
}

func (c *Cfg) loadToml(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return err
	}

	if v, ok := tree.Get("colstore.app_name").(string); ok {
		c.AppName = v
	}
	if v, ok := tree.Get("colstore.data_dir").(string); ok {
		c.DataDir = v
	}
	if v, ok := tree.Get("colstore.page_store_strategy").(string); ok {
		c.PageStoreStrategy = v
	}
	if v, ok := tree.Get("colstore.page_memory_limit").(int64); ok {
		c.PageMemoryLimit = v
	}
	if v, ok := tree.Get("logs.log_error").(string); ok {
		c.LogError = v
	}
	if v, ok := tree.Get("logs.log_infos").(string); ok {
		c.LogInfos = v
	}
	if v, ok := tree.Get("logs.log_level").(string); ok {
		c.LogLevel = v
	}

	logger.Debugf("loaded toml config from %s", path)
	return nil
}

// StoreKind maps the configured strategy name to the page store kind
func (c *Cfg) StoreKind() (page.StoreKind, error) {
	switch strings.ToLower(c.PageStoreStrategy) {
	case "heap", "":
		return page.StoreHeap, nil
	case "region":
		return page.StoreRegion, nil
	default:
		return page.StoreHeap, fmt.Errorf("unknown page store strategy %q", c.PageStoreStrategy)
	}
}

// LogConfig builds the logger configuration from this config
func (c *Cfg) LogConfig() logger.LogConfig {
	return logger.LogConfig{
		ErrorLogPath: c.LogError,
		InfoLogPath:  c.LogInfos,
		LogLevel:     c.LogLevel,
	}
}
