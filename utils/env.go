package utils

import "os"

var (
	HTTP_PORT = GetEnvOrDefault("HTTP_PORT", "8080")

	// DB_PATH is a fallback for the -db flag.
	DB_PATH = os.Getenv("DB_PATH")

	// SCHEMA_COPY_KEY rebinds the schema-to-clipboard shortcut.
	SCHEMA_COPY_KEY = GetEnvOrDefault("SCHEMA_COPY_KEY", "y")

	// EXPORT_DIR is where CSV/Parquet exports land.
	EXPORT_DIR = GetEnvOrDefault("EXPORT_DIR", ".")

	// QUERY_TIMEOUT_SEC bounds refresh and ad-hoc query execution.
	QUERY_TIMEOUT_SEC = GetEnvOrDefaultInt("QUERY_TIMEOUT_SEC", 60)
)
