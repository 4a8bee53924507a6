package storage

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata/v2"
)

const gdataObject = "skirmish"

// GdataStore keeps values as properties of one object in the platform's
// save-data directory.
type GdataStore struct {
	manager *gdata.Manager
}

func OpenGdata(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = "skirmish"
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: open save data: %w", err)
	}
	return &GdataStore{manager: m}, nil
}

// propName keeps keys to plain file-name characters.
func propName(key string) string {
	return strings.NewReplacer(".", "_", "/", "_").Replace(key)
}

func (s *GdataStore) Load(key string) (string, bool, error) {
	key = propName(key)
	if !s.manager.ObjectPropExists(gdataObject, key) {
		return "", false, nil
	}
	data, err := s.manager.LoadObjectProp(gdataObject, key)
	if err != nil {
		return "", false, fmt.Errorf("storage: load %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s *GdataStore) Save(key, value string) error {
	key = propName(key)
	if err := s.manager.SaveObjectProp(gdataObject, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

func (s *GdataStore) Close() error {
	return nil
}
