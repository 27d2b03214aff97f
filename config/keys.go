package config

const (
	envPrefix = "RVM_"

	KeyLogLevel  = envPrefix + "LOG_LEVEL"
	KeyLogFile   = envPrefix + "LOG_FILE"
	KeyMemoIndex = envPrefix + "MEMO_INDEX"
	KeyHeapLimit = envPrefix + "HEAP_LIMIT"
	KeyMaxDepth  = envPrefix + "MAX_DEPTH"
)

const DotEnvFile = ".env"
