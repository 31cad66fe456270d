package repository

import (
	"context"

	"github.com/joho/godotenv"

	"mongorepo/docstore"
	"mongorepo/utils"
)

// Environment variables overriding file-based options
const (
	envURI           = "MONGO_URI"
	envDatabaseID    = "MONGO_DATABASE_ID"
	envEnsureCreated = "MONGO_ENSURE_CREATED"
	envDropDatabase  = "MONGO_DROP_DATABASE"
	envSeedDatabase  = "MONGO_SEED_DATABASE"
)

// Options configures the connection and the one-time startup actions.
// Options are loaded once at process configuration time and are immutable
// thereafter. SeedDatabase is conventionally paired with EnsureCreated.
type Options struct {
	URI           string `yaml:"uri"`
	DatabaseID    string `yaml:"databaseId"`
	EnsureCreated bool   `yaml:"ensureCreated"`
	DropDatabase  bool   `yaml:"dropDatabase"`
	SeedDatabase  bool   `yaml:"seedDatabase"`
}

// Validate checks the required options
func (o Options) Validate() error {
	if o.URI == "" {
		return &ConfigurationError{Option: "uri", Reason: "must not be empty"}
	}
	if o.DatabaseID == "" {
		return &ConfigurationError{Option: "databaseId", Reason: "must not be empty"}
	}
	return nil
}

// LoadOptions binds Options from a YAML file with environment overrides.
// A .env file in the working directory is honored if present. configPath
// may be empty, in which case only the environment is consulted.
func LoadOptions(configPath string) (Options, error) {
	_ = godotenv.Load()

	var opts Options
	if configPath != "" {
		config := utils.LoadConfigMap(configPath)
		opts.URI = utils.GetStringValue(config, "uri", "")
		opts.DatabaseID = utils.GetStringValue(config, "databaseId", "")
		opts.EnsureCreated = utils.GetBoolValue(config, "ensureCreated", false)
		opts.DropDatabase = utils.GetBoolValue(config, "dropDatabase", false)
		opts.SeedDatabase = utils.GetBoolValue(config, "seedDatabase", false)
	}

	opts.URI = utils.GetEnv(envURI, opts.URI)
	opts.DatabaseID = utils.GetEnv(envDatabaseID, opts.DatabaseID)
	opts.EnsureCreated = utils.GetEnvBool(envEnsureCreated, opts.EnsureCreated)
	opts.DropDatabase = utils.GetEnvBool(envDropDatabase, opts.DropDatabase)
	opts.SeedDatabase = utils.GetEnvBool(envSeedDatabase, opts.SeedDatabase)

	return opts, opts.Validate()
}

// Connect validates the options and opens a MongoDB-backed store.
// Connection failures surface as the driver's own error, unwrapped.
func Connect(ctx context.Context, opts Options) (*docstore.MongoStore, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return docstore.NewMongoStore(ctx, opts.URI, opts.DatabaseID)
}
