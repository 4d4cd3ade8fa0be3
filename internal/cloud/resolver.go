// Package cloud resolves a deployed database instance's network address from
// its cloud resource group by driving the provider CLI. The deployment engine
// itself is outside this tool; all it needs back is an address string to feed
// into configure.
package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bytemomo/moray/internal/domain"

	log "github.com/sirupsen/logrus"
)

// CommandRunner matches the probe package's process seam; tests substitute a
// fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// Resolver looks up instance addresses through the cloud CLI.
type Resolver struct {
	Binary string
	Runner CommandRunner
}

// Resolve returns the fully qualified address of the database server inside
// the resource group. When the group holds several servers the first listed
// wins and a warning is logged.
func (r Resolver) Resolve(ctx context.Context, resourceGroup string) (string, error) {
	if strings.TrimSpace(resourceGroup) == "" {
		return "", fmt.Errorf("resource group is required")
	}
	if _, err := r.Runner.LookPath(r.Binary); err != nil {
		return "", fmt.Errorf("%w: %s not found in PATH", domain.ErrDependencyMissing, r.Binary)
	}

	out, err := r.Runner.Run(ctx, r.Binary,
		"mysql", "flexible-server", "list",
		"--resource-group", resourceGroup,
		"--output", "json",
	)
	if err != nil {
		return "", fmt.Errorf("list servers in %s: %w", resourceGroup, err)
	}

	var servers []struct {
		Name string `json:"name"`
		FQDN string `json:"fullyQualifiedDomainName"`
	}
	if err := json.Unmarshal(out, &servers); err != nil {
		return "", fmt.Errorf("parse cloud CLI output: %w", err)
	}
	if len(servers) == 0 {
		return "", fmt.Errorf("no database servers found in resource group %s", resourceGroup)
	}
	if len(servers) > 1 {
		log.WithFields(log.Fields{
			"resource_group": resourceGroup,
			"servers":        len(servers),
		}).Warn("Multiple servers in resource group, using the first")
	}
	if servers[0].FQDN == "" {
		return "", fmt.Errorf("server %s has no resolvable address", servers[0].Name)
	}

	log.WithFields(log.Fields{
		"resource_group": resourceGroup,
		"address":        servers[0].FQDN,
	}).Info("Resolved instance address")
	return servers[0].FQDN, nil
}
