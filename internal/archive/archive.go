// Package archive keeps immutable, timestamped snapshots of an assessment in
// a blob store so earlier states can be listed and restored.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maturity/internal/blob"
	"maturity/internal/snapshot"
	"maturity/pkg/domain"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/errgroup"
)

const (
	// Prefix is the key namespace shared by every archived snapshot.
	Prefix = "assessments/"
	// timestampLayout sorts lexically in chronological order.
	timestampLayout = "20060102T150405.000000000Z"
	headConcurrency = 8

	MetaAssessmentID   = "assessment-id"
	MetaOrganization   = "organization"
	MetaAssessmentDate = "assessment-date"
)

// Entry describes one archived snapshot. AssessmentDate is zero when the
// blob carries no readable date metadata.
type Entry struct {
	Key            string
	AssessmentID   string
	Organization   string
	AssessmentDate civil.Date
	SavedAt        time.Time
	Size           int64
}

// Archive stores snapshots under assessments/<id>/<timestamp>.json.
type Archive struct {
	store blob.Store
	now   func() time.Time
}

// Option customises an Archive.
type Option func(*Archive)

// WithClock overrides the time source used for snapshot keys.
func WithClock(now func() time.Time) Option {
	return func(a *Archive) { a.now = now }
}

// New wraps store.
func New(store blob.Store, opts ...Option) *Archive {
	a := &Archive{store: store, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Driver reports the backing blob driver.
func (a *Archive) Driver() blob.Driver { return a.store.Driver() }

// Key returns the blob key for a snapshot of assessmentID taken at t.
func Key(assessmentID string, t time.Time) string {
	return Prefix + assessmentID + "/" + t.UTC().Format(timestampLayout) + ".json"
}

// Save encodes the assessment and stores it as a new blob.
func (a *Archive) Save(ctx context.Context, assessment domain.Assessment) (Entry, error) {
	if strings.TrimSpace(assessment.ID) == "" || strings.Contains(assessment.ID, "/") {
		return Entry{}, fmt.Errorf("archive: invalid assessment id %q", assessment.ID)
	}
	data, err := snapshot.Encode(assessment)
	if err != nil {
		return Entry{}, fmt.Errorf("archive: encode: %w", err)
	}
	savedAt := a.now().UTC()
	key := Key(assessment.ID, savedAt)
	info, err := a.store.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: snapshot.ContentType,
		Metadata: map[string]string{
			MetaAssessmentID:   assessment.ID,
			MetaOrganization:   assessment.OrganizationName,
			MetaAssessmentDate: assessment.AssessmentDate.String(),
		},
	})
	if err != nil {
		return Entry{}, fmt.Errorf("archive: store %s: %w", key, err)
	}
	entry, _ := entryFor(info)
	entry.Organization = assessment.OrganizationName
	entry.AssessmentDate = assessment.AssessmentDate
	return entry, nil
}

// List returns the snapshots of assessmentID, newest first. An empty id lists
// every archived assessment.
func (a *Archive) List(ctx context.Context, assessmentID string) ([]Entry, error) {
	prefix := Prefix
	if assessmentID != "" {
		prefix += assessmentID + "/"
	}
	infos, err := a.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	a.fillMetadata(ctx, infos)
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entry, ok := entryFor(info)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].SavedAt.After(entries[j].SavedAt)
		}
		return entries[i].Key > entries[j].Key
	})
	return entries, nil
}

// fillMetadata heads blobs whose listing carried no user metadata, as S3
// listings do. A failed head leaves the entry without an organization.
func (a *Archive) fillMetadata(ctx context.Context, infos []blob.Info) {
	var g errgroup.Group
	g.SetLimit(headConcurrency)
	for i := range infos {
		if infos[i].Metadata != nil {
			continue
		}
		g.Go(func() error {
			if head, err := a.store.Head(ctx, infos[i].Key); err == nil {
				infos[i].Metadata = head.Metadata
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Latest returns the newest snapshot of assessmentID.
func (a *Archive) Latest(ctx context.Context, assessmentID string) (Entry, bool, error) {
	entries, err := a.List(ctx, assessmentID)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}

func checkKey(key string) error {
	if !strings.HasPrefix(key, Prefix) {
		return fmt.Errorf("archive: key %q outside %s", key, Prefix)
	}
	return nil
}

// Load returns the raw snapshot document stored at key.
func (a *Archive) Load(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	_, rc, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("archive: load %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive: read %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the snapshot at key. It reports false when nothing was stored there.
func (a *Archive) Delete(ctx context.Context, key string) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	deleted, err := a.store.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("archive: delete %s: %w", key, err)
	}
	return deleted, nil
}

// ShareURL returns a download URL for the snapshot at key, valid for expiry
// where the driver supports expiry. Drivers without URLs return an error
// wrapping blob.ErrUnsupported.
func (a *Archive) ShareURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	u, err := a.store.PresignURL(ctx, key, blob.SignedURLOptions{Method: "GET", Expiry: expiry})
	if err != nil {
		return "", fmt.Errorf("archive: share %s: %w", key, err)
	}
	return u, nil
}

// entryFor parses assessments/<id>/<timestamp>.json keys. Foreign blobs are skipped.
func entryFor(info blob.Info) (Entry, bool) {
	rest := strings.TrimPrefix(info.Key, Prefix)
	id, name, ok := strings.Cut(rest, "/")
	if !ok || id == "" || strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
		return Entry{}, false
	}
	savedAt, err := time.Parse(timestampLayout, strings.TrimSuffix(name, ".json"))
	if err != nil {
		return Entry{}, false
	}
	entry := Entry{
		Key:          info.Key,
		AssessmentID: id,
		Organization: metadataValue(info.Metadata, MetaOrganization),
		SavedAt:      savedAt,
		Size:         info.Size,
	}
	if d, err := civil.ParseDate(metadataValue(info.Metadata, MetaAssessmentDate)); err == nil {
		entry.AssessmentDate = d
	}
	return entry, true
}

// metadataValue looks key up case-insensitively; S3 may alter header casing.
func metadataValue(md map[string]string, key string) string {
	if v, ok := md[key]; ok {
		return v
	}
	for k, v := range md {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
