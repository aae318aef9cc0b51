package score

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/oshokin/snake-game/internal/config"
	"github.com/oshokin/snake-game/internal/logger"
)

// Filename is the high score file inside the data folder.
const Filename = "highscore.dat"

// zstdFlag marks a compressed score.
const zstdFlag byte = 0x01

// Repository defines persistence operations for the high score.
type Repository interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
}

// FileRepository keeps the high score in a small binary file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// ErrCorrupt is returned by Decode for data that holds no score.
var ErrCorrupt = errors.New("high score data is corrupt")

//nolint:gochecknoglobals // Stateless codecs shared by all repositories.
var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// NewFileRepository creates a repository for the file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load returns the stored high score. A missing or empty file is 0.
// A corrupt file is overwritten with 0.
func (r *FileRepository) Load(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}

		return 0, fmt.Errorf("read high score file: %w", err)
	}

	if len(data) == 0 {
		return 0, nil
	}

	score, err := Decode(data)
	if err != nil {
		logger.WarnKV(ctx, "High score file is corrupt, resetting it", "path", r.path, "error", err)

		if err = r.write(0); err != nil {
			return 0, err
		}

		return 0, nil
	}

	return score, nil
}

// Save stores score.
func (r *FileRepository) Save(_ context.Context, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(score)
}

func (r *FileRepository) write(score int) error {
	if err := os.WriteFile(r.path, Encode(score), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write high score file: %w", err)
	}

	return nil
}

// Encode returns the flagged zstd form of score.
func Encode(score int) []byte {
	return encoder.EncodeAll([]byte(strconv.Itoa(score)), []byte{zstdFlag})
}

// EncodeLegacy returns the base64 form written by older releases.
func EncodeLegacy(score int) []byte {
	return []byte(base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(score))))
}

// Decode reads either format.
func Decode(data []byte) (int, error) {
	var (
		plain []byte
		err   error
	)

	if len(data) > 0 && data[0] == zstdFlag {
		plain, err = decoder.DecodeAll(data[1:], nil)
	} else {
		plain, err = base64.StdEncoding.DecodeString(string(data))
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	score, err := strconv.Atoi(string(plain))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return score, nil
}
