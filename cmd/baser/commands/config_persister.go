package commands

import (
	"sync"
)

// ConfigPersister implements the token persister used by login: it writes
// the site and token into the CLI config file.
type ConfigPersister struct {
	path  string
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister writing to path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path}
}

// SaveToken stores baseURL and token in the config file.
func (p *ConfigPersister) SaveToken(baseURL, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(p.path)
	if err != nil {
		return err
	}

	config.BaseURL = baseURL
	config.AccessToken = token

	return writeConfigFile(p.path, config)
}

// ClearToken removes the stored token.
func (p *ConfigPersister) ClearToken() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(p.path)
	if err != nil {
		return err
	}

	config.AccessToken = ""

	return writeConfigFile(p.path, config)
}
