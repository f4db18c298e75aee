// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

// Host-level suffixes. The full key is meta.EnvPrefix + "_" + suffix.
const (
	HostSuffixEnv         = "ENV"
	HostSuffixProjectDir  = "PROJECT_DIR"
	HostSuffixConfigPath  = "CONFIG_PATH"
	HostSuffixConfigHome  = "CONFIG_HOME"
	HostSuffixLogLevel    = "LOG_LEVEL"
	HostSuffixInteractive = "INTERACTIVE"
	HostSuffixMasterKey   = "MASTER_KEY"
	HostSuffixToken       = "TOKEN"
)

// AWS settings consumed by the remote registry backends.
const (
	EnvAWSRegion          = "AWS_REGION"
	EnvRegistryAccessKey  = "ENVCTX_REGISTRY_ACCESS_KEY"
	EnvRegistrySecretKey  = "ENVCTX_REGISTRY_SECRET_KEY"
	EnvRegistryEndpoint   = "ENVCTX_REGISTRY_ENDPOINT"
	EnvCLICommandOverride = "CLI_CMD"
)
