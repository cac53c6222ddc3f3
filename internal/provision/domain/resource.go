package domain

import (
	"fmt"
	"strings"
)

// ResourceType identifies one of the provisionable resource kinds.
type ResourceType string

const (
	ResourceServer     ResourceType = "server"
	ResourceDatabase   ResourceType = "database"
	ResourceStorage    ResourceType = "storage"
	ResourceNetworking ResourceType = "networking"
)

// ResourceTypes lists every supported resource type in display order.
var ResourceTypes = []ResourceType{
	ResourceServer,
	ResourceDatabase,
	ResourceStorage,
	ResourceNetworking,
}

// Valid reports whether t is one of the supported resource types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceServer, ResourceDatabase, ResourceStorage, ResourceNetworking:
		return true
	}
	return false
}

// Plural returns the REST collection path segment for t.
func (t ResourceType) Plural() string {
	switch t {
	case ResourceServer:
		return "servers"
	case ResourceDatabase:
		return "databases"
	case ResourceStorage:
		return "storage"
	case ResourceNetworking:
		return "networking"
	}
	return string(t)
}

// Title returns the user-facing name shown in trace output.
func (t ResourceType) Title() string {
	switch t {
	case ResourceServer:
		return "Server"
	case ResourceDatabase:
		return "Database"
	case ResourceStorage:
		return "Storage Bucket"
	case ResourceNetworking:
		return "Network Resource"
	}
	return string(t)
}

// Noun returns the lowercase name used in prompts and chat replies
// (e.g. "S3 storage bucket").
func (t ResourceType) Noun() string {
	switch t {
	case ResourceServer:
		return "server"
	case ResourceDatabase:
		return "database"
	case ResourceStorage:
		return "S3 storage bucket"
	case ResourceNetworking:
		return "network resource"
	}
	return string(t)
}

// ParseResourceType resolves a user-supplied name, including common aliases
// such as "db" or "bucket", to a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server", "servers", "vm", "instance":
		return ResourceServer, nil
	case "database", "databases", "db":
		return ResourceDatabase, nil
	case "storage", "bucket", "buckets", "s3":
		return ResourceStorage, nil
	case "networking", "network", "networks", "vpc":
		return ResourceNetworking, nil
	}
	return "", fmt.Errorf("%w: unknown resource type %q (valid: server, database, storage, networking)", ErrInvalidInput, s)
}
