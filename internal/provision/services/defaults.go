package services

import (
	"strconv"
	"strings"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Defaults applied when the model omits a configuration field.
const (
	DefaultDatabaseEngine  = "postgres"
	DefaultDatabaseVersion = "14"
	DefaultServerImage     = "ubuntu-20.04"
	DefaultServerSize      = "medium"
	DefaultCIDRBlock       = "10.0.0.0/16"
	DefaultRegion          = "us-east-1"
)

// namePrefixes are used to generate a name when the model supplies none.
var namePrefixes = map[domain.ResourceType]string{
	domain.ResourceDatabase:   "db",
	domain.ResourceServer:     "server",
	domain.ResourceNetworking: "network",
	domain.ResourceStorage:    "bucket",
}

// resourceName returns the requested name verbatim (trimmed), or a
// generated "<prefix>-<unix millis>" name.
func (s *Service) resourceName(action domain.ProvisionAction) string {
	if name := strings.TrimSpace(action.ResourceName); name != "" {
		return name
	}
	return namePrefixes[action.ResourceType] + "-" + strconv.FormatInt(s.now().UnixMilli(), 10)
}

// withDefaults returns the configuration variant for the action's resource
// type with empty fields filled in. A missing or mismatched config is
// treated as empty.
func withDefaults(action domain.ProvisionAction) domain.ResourceConfig {
	switch action.ResourceType {
	case domain.ResourceDatabase:
		cfg, _ := action.Config.(domain.DatabaseConfig)
		if cfg.Engine == "" {
			cfg.Engine = DefaultDatabaseEngine
		}
		if cfg.Version == "" {
			cfg.Version = DefaultDatabaseVersion
		}
		return cfg
	case domain.ResourceServer:
		cfg, _ := action.Config.(domain.ServerConfig)
		if cfg.Image == "" {
			cfg.Image = DefaultServerImage
		}
		if cfg.Size == "" {
			cfg.Size = DefaultServerSize
		}
		return cfg
	case domain.ResourceNetworking:
		cfg, _ := action.Config.(domain.NetworkConfig)
		if cfg.CIDRBlock == "" {
			cfg.CIDRBlock = DefaultCIDRBlock
		}
		return cfg
	case domain.ResourceStorage:
		cfg, _ := action.Config.(domain.StorageConfig)
		if cfg.Region == "" {
			cfg.Region = DefaultRegion
		}
		return cfg
	}
	return nil
}

// createBody builds the REST request body for a create call.
func createBody(name string, cfg domain.ResourceConfig) map[string]any {
	body := map[string]any{"name": name}
	switch c := cfg.(type) {
	case domain.DatabaseConfig:
		body["engine"] = c.Engine
		body["version"] = c.Version
	case domain.ServerConfig:
		body["image"] = c.Image
		body["size"] = c.Size
	case domain.NetworkConfig:
		body["cidrBlock"] = c.CIDRBlock
	case domain.StorageConfig:
		body["region"] = c.Region
	}
	return body
}
