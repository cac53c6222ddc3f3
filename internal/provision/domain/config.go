package domain

import "encoding/json"

// ResourceConfig is the type-specific configuration of a ProvisionAction.
// The set of implementations is closed to this package.
type ResourceConfig interface {
	// ResourceType returns the resource type this configuration belongs to.
	ResourceType() ResourceType

	sealed()
}

// DatabaseConfig configures a database. Empty fields take defaults.
type DatabaseConfig struct {
	Engine  string `json:"engine,omitempty"`
	Version string `json:"version,omitempty"`
}

// ServerConfig configures a server. Empty fields take defaults.
type ServerConfig struct {
	Image string `json:"image,omitempty"`
	Size  string `json:"size,omitempty"`
}

// NetworkConfig configures a network. An empty CIDRBlock takes the default.
type NetworkConfig struct {
	CIDRBlock string `json:"cidrBlock,omitempty"`
}

// StorageConfig configures a storage bucket. An empty Region takes the default.
type StorageConfig struct {
	Region string `json:"region,omitempty"`
}

func (DatabaseConfig) ResourceType() ResourceType { return ResourceDatabase }
func (ServerConfig) ResourceType() ResourceType   { return ResourceServer }
func (NetworkConfig) ResourceType() ResourceType  { return ResourceNetworking }
func (StorageConfig) ResourceType() ResourceType  { return ResourceStorage }

func (DatabaseConfig) sealed() {}
func (ServerConfig) sealed()   {}
func (NetworkConfig) sealed()  {}
func (StorageConfig) sealed()  {}

// RawConfig is the flat configuration object the model fills in. Only the
// fields relevant to the action's resource type survive ForType.
type RawConfig struct {
	Engine    string `json:"engine,omitempty"`
	Version   string `json:"version,omitempty"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size,omitempty"`
	CIDRBlock string `json:"cidrBlock,omitempty"`
	Region    string `json:"region,omitempty"`
}

// UnmarshalJSON accepts any JSON scalar for a field. Numbers and booleans
// are kept in their string form, so "version": 8 reads as "8".
func (c *RawConfig) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*c = RawConfig{
		Engine:    ScalarString(fields["engine"]),
		Version:   ScalarString(fields["version"]),
		Image:     ScalarString(fields["image"]),
		Size:      ScalarString(fields["size"]),
		CIDRBlock: ScalarString(fields["cidrBlock"]),
		Region:    ScalarString(fields["region"]),
	}
	return nil
}

// ForType builds the configuration variant for t, ignoring fields that
// belong to other resource types. It returns nil for an unknown type.
func (c RawConfig) ForType(t ResourceType) ResourceConfig {
	switch t {
	case ResourceDatabase:
		return DatabaseConfig{Engine: c.Engine, Version: c.Version}
	case ResourceServer:
		return ServerConfig{Image: c.Image, Size: c.Size}
	case ResourceNetworking:
		return NetworkConfig{CIDRBlock: c.CIDRBlock}
	case ResourceStorage:
		return StorageConfig{Region: c.Region}
	}
	return nil
}
