package core

const (
	DefaultFilePerm = 0755

	// TargetCardanoNode is the only provisioning target the tool accepts.
	TargetCardanoNode = "cardano-node"

	// NodeServiceName is the systemd unit managed by the playbooks.
	NodeServiceName = "cardano-node"

	// NodeProcessName is the executable name probed with pgrep.
	NodeProcessName = "cardano-node"

	// DefaultCardanoPort is the node's default listening port, matching the
	// parameter template shipped with the automation files.
	DefaultCardanoPort = 6002
)
