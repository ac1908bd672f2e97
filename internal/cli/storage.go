package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

// PostgresAlias selects PostgreSQL with the connection string taken from the
// environment or the OS keyring.
const PostgresAlias = "postgresql"

// OpenStorage turns the --config value into a provider. PostgreSQL locations
// must not carry credentials: those come from the environment or the keyring.
func OpenStorage(location string) (storage.Provider, error) {
	if location != PostgresAlias && !storage.IsPostgres(location) {
		return storage.Open(utils.ExpandPath(location)), nil
	}

	if storage.IsPostgres(location) && storage.HasEmbeddedCredentials(location) {
		return nil, fmt.Errorf("%w; store the connection string with '%s keyring set' or export %s",
			storage.ErrEmbeddedCredentials, constants.AppName, constants.EnvDBConnection)
	}

	connStr := keyring.ResolveConnectionString(location)
	if connStr == PostgresAlias {
		return nil, fmt.Errorf("no PostgreSQL connection string found; run '%s keyring set' or export %s",
			constants.AppName, constants.EnvDBConnection)
	}
	if !storage.IsPostgres(connStr) && !strings.Contains(connStr, "host=") {
		return nil, fmt.Errorf("%w: %s", storage.ErrInvalidConnectionString, keyring.MaskPassword(connStr))
	}
	return storage.NewPostgresStore(connStr), nil
}
