// Package toml persists the latest deck-session snapshot to a TOML file so
// the CLI can resume a session across invocations.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/karu-dev/deckhand/internal/domain"
	"github.com/karu-dev/deckhand/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	sessionPathKey    = "session.path"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigDir  = ".config/deckhand"
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

// Repository stores exactly one session snapshot per path. Writes are
// atomic (temp file + rename) and guarded by a per-path lock shared by all
// repositories in the process.
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

// NewRepository resolves the session file path from the given viper
// configuration, falling back to ~/.config/deckhand/session.toml.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sessionConfigDir, sessionConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sessionConfigDir))
	cfg.SetDefault(sessionPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionPath := cfg.GetString(sessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Load(ctx context.Context) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.SessionState{}, err
	}
	if file.Session == nil {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}

	return fromSchema(*file.Session), nil
}

func (r *Repository) Save(ctx context.Context, state domain.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	encoded := toSchema(state)
	return r.writeSchema(fileSchema{Session: &encoded})
}

func (r *Repository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode session file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(state domain.SessionState) sessionSchema {
	session := sessionSchema{
		SavedAt: formatTime(state.UpdatedAt),
	}

	if state.Deck != nil {
		session.Deck = &deckSchema{
			ID:        string(state.Deck.ID),
			Shuffled:  state.Deck.Shuffled,
			Remaining: state.Deck.Remaining,
		}
	}

	for _, card := range state.Cards {
		session.Cards = append(session.Cards, cardSchema{
			Code:     card.Code,
			Value:    card.Value,
			Suit:     card.Suit,
			Image:    card.Image,
			ImageSVG: card.Images.SVG,
			ImagePNG: card.Images.PNG,
		})
	}

	return session
}

func fromSchema(session sessionSchema) domain.SessionState {
	state := domain.SessionState{
		UpdatedAt: parseTime(session.SavedAt),
	}

	if session.Deck != nil {
		state.Deck = &domain.DeckDescriptor{
			ID:        domain.DeckID(session.Deck.ID),
			Shuffled:  session.Deck.Shuffled,
			Remaining: session.Deck.Remaining,
		}
	}

	for _, card := range session.Cards {
		state.Cards = append(state.Cards, domain.Card{
			Code:  card.Code,
			Value: card.Value,
			Suit:  card.Suit,
			Image: card.Image,
			Images: domain.CardImages{
				SVG: card.ImageSVG,
				PNG: card.ImagePNG,
			},
		})
	}

	return state
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
