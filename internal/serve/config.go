package serve

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional devserve config file schema.
type FileConfig struct {
    Host string `yaml:"host" json:"host"`
    Port int    `yaml:"port" json:"port"`
    Root string `yaml:"root" json:"root"`
    Open *bool  `yaml:"open" json:"open"`

    CORS struct {
        Origin  string `yaml:"origin" json:"origin"`
        Methods string `yaml:"methods" json:"methods"`
        Headers string `yaml:"headers" json:"headers"`
    } `yaml:"cors" json:"cors"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still holding their flag defaults. Flags should already have been parsed;
// this lets the file supply defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }
    if cfg.Host == "" && fc.Host != "" {
        cfg.Host = fc.Host
    }
    if (cfg.Port == 0 || cfg.Port == DefaultPort) && fc.Port > 0 {
        cfg.Port = fc.Port
    }
    if (cfg.Root == "" || cfg.Root == ".") && fc.Root != "" {
        cfg.Root = fc.Root
    }
    // Browser toggle: default on; the file may flip it either way when set.
    if fc.Open != nil {
        cfg.Open = *fc.Open
    }
    if cfg.AllowOrigin == "" && fc.CORS.Origin != "" {
        cfg.AllowOrigin = fc.CORS.Origin
    }
    if cfg.AllowMethods == "" && fc.CORS.Methods != "" {
        cfg.AllowMethods = fc.CORS.Methods
    }
    if cfg.AllowHeaders == "" && fc.CORS.Headers != "" {
        cfg.AllowHeaders = fc.CORS.Headers
    }
}

// ValidateConfig performs minimal schema validation for required settings.
// Port 0 stays valid so tests can bind an ephemeral port.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.Root) == "" {
        return errors.New("config: root directory is required")
    }
    if cfg.Port < 0 || cfg.Port > 65535 {
        return fmt.Errorf("config: port %d out of range", cfg.Port)
    }
    return nil
}
