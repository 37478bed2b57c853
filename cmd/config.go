package cmd

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// DBPath is the database file used when DBDriver is sqlite.
	DBPath            string
	ReconcileSchedule string
	LogLevel          string
}
