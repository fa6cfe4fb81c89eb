package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and Azure role definition",
	Long:  `Creates a sample .azspectre.yaml config file and a least-privilege Azure custom role definition JSON for read-only auditing.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".azspectre.yaml"
	rolePath := "azspectre-role.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(rolePath, sampleRoleDefinition, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, rolePath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .azspectre.yaml to customize audit settings")
	fmt.Println("  2. Create the role: az role definition create --role-definition azspectre-role.json")
	fmt.Println("  3. Assign it to your principal, then run: azspectre audit")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# azspectre configuration
# See: https://github.com/ppiankov/azspectre

# Entra ID tenant (or set AZURE_TENANT_ID env var)
# tenant_id: 00000000-0000-0000-0000-000000000000

# Subscriptions to audit (default: all visible subscriptions)
# subscriptions:
#   - 11111111-1111-1111-1111-111111111111
#   - 22222222-2222-2222-2222-222222222222

# Max subscriptions audited in parallel (default: min(subscriptions, 8))
# concurrency: 8

# Size of the top-risk and top-waste lists in the report
top_n: 10

# Skip empty-plan detection and cost estimation
skip_empty_plans: false

# Tag keys checked (in order) when resolving an application owner
# owner_tag_keys:
#   - owner
#   - team

# Pricing table override (JSON, same shape as the embedded table)
# pricing_file: pricing.json

# Output format: text, json, or csv
format: text

# Overall audit timeout
timeout: 15m

# Per-subscription timeout
subscription_timeout: 2m

# Resources to exclude from auditing
# exclude:
#   resource_ids:
#     - /subscriptions/.../providers/Microsoft.Web/sites/legacy-app
#   tags:
#     - "environment=sandbox"
#     - "azspectre:ignore"
`

const sampleRoleDefinition = `{
  "Name": "AzSpectre Auditor",
  "Description": "Read-only access for azspectre App Service audits",
  "IsCustom": true,
  "Actions": [
    "Microsoft.Resources/subscriptions/read",
    "Microsoft.Web/serverfarms/read",
    "Microsoft.Web/sites/read",
    "Microsoft.Web/sites/config/read",
    "Microsoft.Web/sites/config/list/action"
  ],
  "NotActions": [],
  "AssignableScopes": [
    "/subscriptions/SUBSCRIPTION_ID"
  ]
}
`
