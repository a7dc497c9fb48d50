package commands

const (
	DEFAULT_DAYS    = 7
	DEFAULT_REGION  = "us-east-1"
	DEFAULT_VERSION = "auto"
	DEFAULT_WORKERS = 4
)
