// Package store persists generated scenes in SQLite.
package store

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/internal/obstacle"
	"github.com/Faultbox/procscape/internal/scene"
	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/internal/voronoi"
)

var ErrNotFound = errors.New("scene not found")

// DB wraps a SQLite connection holding saved scenes.
type DB struct {
	conn *sqlx.DB
	log  *zap.Logger
}

// Entry is one saved scene. Heights is nil in List results.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Seed        int64
	Width       int
	Height      int
	Level       int
	Params      scene.Params
	Regions     []voronoi.Region
	Obstacles   int
	Segments    int
	Heights     []float32
	HeightBytes int
}

type row struct {
	ID          string `db:"id"`
	CreatedAt   int64  `db:"created_at"`
	Seed        int64  `db:"seed"`
	Width       int    `db:"width"`
	Height      int    `db:"height"`
	Level       int    `db:"level"`
	Strategy    string `db:"strategy"`
	ParamsJSON  string `db:"params_json"`
	RegionsJSON string `db:"regions_json"`
	Obstacles   int    `db:"obstacles"`
	Segments    int    `db:"segments"`
	Heights     []byte `db:"heights"`
	HeightBytes int    `db:"height_bytes"`
}

// Open opens or creates a scene database at path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, log: logger.Named("store")}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenes (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		level INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		params_json TEXT NOT NULL,
		regions_json TEXT NOT NULL,
		obstacles INTEGER NOT NULL,
		segments INTEGER NOT NULL,
		heights BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenes_created ON scenes(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Save stores a snapshot under a new id and returns the id.
func (db *DB) Save(snap *scene.Snapshot) (string, error) {
	params, err := json.Marshal(snap.Params)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}
	regions, err := json.Marshal(snap.Regions)
	if err != nil {
		return "", fmt.Errorf("encode regions: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(`INSERT INTO scenes
		(id, created_at, seed, width, height, level, strategy,
		 params_json, regions_json, obstacles, segments, heights)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, snap.CreatedAt.UnixNano(), snap.Seed, snap.Field.Width, snap.Field.Height, snap.Level,
		string(snap.Params.Strategy), string(params), string(regions),
		len(snap.Obstacles), obstacle.SegmentCount(snap.Obstacles),
		encodeHeights(snap.Field.Heights()),
	)
	if err != nil {
		return "", fmt.Errorf("insert scene: %w", err)
	}

	db.log.Info("scene saved",
		zap.String("id", id),
		zap.Int64("seed", snap.Seed),
		zap.Int("regions", len(snap.Regions)),
	)
	return id, nil
}

// Get loads a scene including its heights.
func (db *DB) Get(id string) (*Entry, error) {
	var r row
	err := db.conn.Get(&r, `SELECT id, created_at, seed, width, height, level, strategy,
		params_json, regions_json, obstacles, segments, heights, length(heights) AS height_bytes
		FROM scenes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select scene: %w", err)
	}
	return r.entry(true)
}

// List returns up to limit scenes, newest first, without their heights.
func (db *DB) List(limit int) ([]Entry, error) {
	var rows []row
	err := db.conn.Select(&rows, `SELECT id, created_at, seed, width, height, level, strategy,
		params_json, regions_json, obstacles, segments, length(heights) AS height_bytes
		FROM scenes ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select scenes: %w", err)
	}

	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry(false)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Delete removes a scene.
func (db *DB) Delete(id string) error {
	res, err := db.conn.Exec("DELETE FROM scenes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (r *row) entry(withHeights bool) (*Entry, error) {
	e := &Entry{
		ID:          r.ID,
		CreatedAt:   time.Unix(0, r.CreatedAt).UTC(),
		Seed:        r.Seed,
		Width:       r.Width,
		Height:      r.Height,
		Level:       r.Level,
		Obstacles:   r.Obstacles,
		Segments:    r.Segments,
		HeightBytes: r.HeightBytes,
	}
	if err := json.Unmarshal([]byte(r.ParamsJSON), &e.Params); err != nil {
		return nil, fmt.Errorf("scene %s params: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.RegionsJSON), &e.Regions); err != nil {
		return nil, fmt.Errorf("scene %s regions: %w", r.ID, err)
	}
	if withHeights {
		h, err := decodeHeights(r.Heights)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", r.ID, err)
		}
		if len(h) != r.Width*r.Height {
			return nil, fmt.Errorf("scene %s: %d heights for %dx%d", r.ID, len(h), r.Width, r.Height)
		}
		e.Heights = h
	}
	return e, nil
}

// Field rebuilds the height field, painting cells with their region colour
// or, without regions, by height band.
func (e *Entry) Field() (*terrain.HeightField, error) {
	f, err := terrain.NewHeightField(e.Width, e.Height)
	if err != nil {
		return nil, err
	}
	if err := f.SetHeights(e.Heights); err != nil {
		return nil, err
	}
	terrain.CalculateNormals(f)
	terrain.PaintByHeight(f)

	if len(e.Regions) > 0 {
		for j := range f.Height {
			for i := range f.Width {
				r := voronoi.Nearest(e.Regions, float32(i), float32(j))
				f.Cells[f.Index(i, j)].Color = e.Regions[r].ColourVector
			}
		}
	}
	return f, nil
}

// Heights are stored as little-endian float32 bits.
func encodeHeights(h []float32) []byte {
	buf := make([]byte, 4*len(h))
	for i, v := range h {
		binary.LittleEndian.PutUint32(buf[4*i:], gomath.Float32bits(v))
	}
	return buf
}

func decodeHeights(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("height blob of %d bytes is not a multiple of 4", len(b))
	}
	h := make([]float32, len(b)/4)
	for i := range h {
		h[i] = gomath.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return h, nil
}
