package config

// AccountType selects how an account's address and key are obtained
type AccountType string

const (
	AccountTypePrivateKey AccountType = "private_key"
	AccountTypeKeystore   AccountType = "keystore"
	AccountTypeAddress    AccountType = "address" // watch-only, cannot sign
)

// AccountConfig represents a named signing entity in [accounts.*] sections.
type AccountConfig struct {
	Type        AccountType `toml:"type"`
	PrivateKey  string      `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Keystore    string      `toml:"keystore,omitempty"`    // path relative to the project root
	PasswordEnv string      `toml:"password_env,omitempty"`
	Address     string      `toml:"address,omitempty"`
}

// NetworkConfig represents a [networks.*] section in deploy.toml
type NetworkConfig struct {
	RPCURL        string `toml:"rpc_url"`
	ChainID       uint64 `toml:"chain_id,omitempty"`
	Live          bool   `toml:"live,omitempty"`
	Confirmations uint64 `toml:"confirmations,omitempty"`
	Explorer      string `toml:"explorer,omitempty"`
}

// NamespaceRoles maps role names (e.g. "deployer") to account names
type NamespaceRoles map[string]string

// ProjectConfig represents deploy.toml
type ProjectConfig struct {
	Networks  map[string]NetworkConfig  `toml:"networks"`
	Accounts  map[string]AccountConfig  `toml:"accounts"`
	Namespace map[string]NamespaceRoles `toml:"namespace"`
}

// ResolvedNamespace holds the fully-resolved configuration for a namespace
// after walking the dot-based hierarchy and resolving role→account mappings.
type ResolvedNamespace struct {
	Name         string
	AccountNames map[string]string        // role name → account name
	Accounts     map[string]AccountConfig // role name → resolved AccountConfig
}
