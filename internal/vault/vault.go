package vault

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/idelchi/cryptobro/internal/checksum"
	"github.com/idelchi/cryptobro/internal/encryption"
	"github.com/idelchi/cryptobro/internal/fileutil"
	"github.com/idelchi/cryptobro/internal/filter"
	"github.com/idelchi/cryptobro/internal/keys"
	"github.com/idelchi/cryptobro/internal/sizeguard"
)

// LockedSuffix is appended to packed file names and stripped on unpack.
const LockedSuffix = ".locked"

// Lister enumerates candidate files in a namespace.
type Lister interface {
	List(namespace string) ([]filter.FileRecord, error)
}

// Admitter enforces the size ceiling before and while a file is read.
type Admitter interface {
	Check(size int64) error
	Limit() uint64
}

// Decision is the operator's answer to a proposed key.
type Decision int

const (
	// Accept commits to the proposed key.
	Accept Decision = iota
	// Regenerate discards the proposed key and proposes a new one.
	Regenerate
	// Cancel abandons the pack.
	Cancel
)

// KeyConfirmer shows a proposed key token to the operator and returns their decision.
// It is the only place a pack key is ever shown.
type KeyConfirmer func(token string) (Decision, error)

// Vault packs and unpacks files on a filesystem.
type Vault struct {
	fs     afero.Fs
	lister Lister
	guard  Admitter
	random io.Reader
	engine *encryption.CBC
	log    logrus.FieldLogger
}

// New returns a Vault. random supplies both key material and IVs.
func New(fsys afero.Fs, lister Lister, guard Admitter, random io.Reader, log logrus.FieldLogger) *Vault {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return &Vault{
		fs:     fsys,
		lister: lister,
		guard:  guard,
		random: random,
		engine: encryption.New(random),
		log:    log,
	}
}

// Candidates lists the files an operator can choose from in namespace.
func (v *Vault) Candidates(namespace string) ([]filter.FileRecord, error) {
	records, err := v.lister.List(namespace)
	if err != nil {
		return nil, ioError(err)
	}

	return records, nil
}

// PackRequest selects a file for packing.
type PackRequest struct {
	// Source is the plaintext namespace.
	Source string
	// Destination receives <name>.locked.
	Destination string
	// Index is the zero-based position in Candidates(Source).
	Index int
	// Confirm approves the generated key. Nil accepts the first key.
	Confirm KeyConfirmer
}

// PackResult describes a persisted envelope.
type PackResult struct {
	Input    string
	Output   string
	Size     int64
	Checksum string
}

// UnpackRequest selects an envelope and supplies its key.
type UnpackRequest struct {
	// Source is the encrypted namespace.
	Source string
	// Destination receives the name with one .locked removed.
	Destination string
	// Index is the zero-based position in Candidates(Source).
	Index int
	// Token is the base64 key printed at pack time.
	Token string
}

// UnpackResult describes a persisted plaintext.
type UnpackResult struct {
	Input    string
	Output   string
	Size     int64
	Checksum string
}

// OutputName maps an envelope file name to its plaintext name.
// The first occurrence of ".locked" is removed; other names are returned unchanged.
func OutputName(name string) string {
	return strings.Replace(name, LockedSuffix, "", 1)
}

// run tracks the stage of a single operation for errors and logging.
type run struct {
	op    string
	stage State
	path  string
	log   logrus.FieldLogger
}

func (r *run) enter(stage State) {
	r.stage = stage
	r.log.WithFields(logrus.Fields{"op": r.op, "stage": stage.String(), "path": r.path}).Debug("entering stage")
}

// reject moves the run to Rejected, remembering the stage it failed in.
func (r *run) reject(err error) error {
	failedAt := r.stage
	r.stage = Rejected

	r.log.WithFields(logrus.Fields{
		"op":        r.op,
		"stage":     r.stage.String(),
		"failed_at": failedAt.String(),
		"path":      r.path,
	}).Debugf("rejected: %v", err)

	return &Error{Op: r.op, Stage: Rejected, FailedAt: failedAt, Path: r.path, Err: err}
}

// selectAndAdmit runs the SelectingFile and AdmissionCheck stages.
func (v *Vault) selectAndAdmit(r *run, namespace string, index int) (filter.FileRecord, error) {
	r.enter(SelectingFile)

	records, err := v.Candidates(namespace)
	if err != nil {
		return filter.FileRecord{}, r.reject(err)
	}

	record, err := filter.SelectByIndex(records, index)
	if err != nil {
		return filter.FileRecord{}, r.reject(err)
	}

	r.path = record.Path

	r.enter(AdmissionCheck)

	// The listing may be stale; admit the size the file has now.
	info, err := v.fs.Stat(record.Path)
	if err != nil {
		return filter.FileRecord{}, r.reject(ioError(err))
	}

	record.Size = info.Size()

	if err := v.guard.Check(record.Size); err != nil {
		return filter.FileRecord{}, r.reject(err)
	}

	return record, nil
}

// readAdmitted reads path but never more than the current limit, so a file
// that grows after admission is rejected instead of read in full.
func (v *Vault) readAdmitted(path string) ([]byte, error) {
	file, err := v.fs.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer file.Close()

	limit := v.guard.Limit()

	data, err := io.ReadAll(io.LimitReader(file, readCap(limit)))
	if err != nil {
		clear(data)

		return nil, ioError(err)
	}

	if size := uint64(len(data)); size > limit {
		clear(data)

		return nil, &sizeguard.TooLargeError{Limit: limit, Size: size}
	}

	return data, nil
}

// readCap is one byte past limit, enough to tell a file over the limit apart.
func readCap(limit uint64) int64 {
	if limit >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(limit) + 1
}

// Pack encrypts the selected file under a freshly generated key.
//
//nolint:funlen // linear walk through the stages
func (v *Vault) Pack(req PackRequest) (PackResult, error) {
	r := &run{op: "pack", log: v.log}

	record, err := v.selectAndAdmit(r, req.Source, req.Index)
	if err != nil {
		return PackResult{}, err
	}

	r.enter(KeyAcquisition)

	key, err := v.acquireKey(req.Confirm)
	if err != nil {
		return PackResult{}, r.reject(err)
	}
	defer key.Zero()

	r.enter(Transforming)

	plaintext, err := v.readAdmitted(record.Path)
	if err != nil {
		return PackResult{}, r.reject(err)
	}
	defer clear(plaintext)

	envelope, err := v.engine.Encrypt(plaintext, key)
	if err != nil {
		return PackResult{}, r.reject(err)
	}

	outPath := filepath.Join(req.Destination, record.Name+LockedSuffix)

	size, err := fileutil.WriteFile(v.fs, outPath, envelope)
	if err != nil {
		r.path = outPath

		return PackResult{}, r.reject(ioError(err))
	}

	r.enter(Persisted)

	result := PackResult{
		Input:    record.Path,
		Output:   outPath,
		Size:     size,
		Checksum: checksum.Sum(envelope),
	}

	r.enter(Reported)

	v.log.WithFields(logrus.Fields{
		"op":       r.op,
		"input":    result.Input,
		"output":   result.Output,
		"size":     result.Size,
		"checksum": result.Checksum,
	}).Info("packed file")

	return result, nil
}

// acquireKey proposes keys until the confirmer accepts one.
func (v *Vault) acquireKey(confirm KeyConfirmer) (keys.Key, error) {
	for {
		key, err := keys.Generate(v.random)
		if err != nil {
			return nil, err
		}

		if confirm == nil {
			return key, nil
		}

		decision, err := confirm(key.Token())
		if err != nil {
			key.Zero()

			return nil, fmt.Errorf("confirming key: %w", err)
		}

		switch decision {
		case Accept:
			return key, nil
		case Regenerate:
			key.Zero()
		case Cancel:
			key.Zero()

			return nil, ErrCancelled
		default:
			key.Zero()

			return nil, fmt.Errorf("unknown key decision %d", decision)
		}
	}
}

// Unpack decrypts the selected envelope with the key decoded from req.Token.
func (v *Vault) Unpack(req UnpackRequest) (UnpackResult, error) {
	r := &run{op: "unpack", log: v.log}

	record, err := v.selectAndAdmit(r, req.Source, req.Index)
	if err != nil {
		return UnpackResult{}, err
	}

	r.enter(KeyAcquisition)

	key, err := keys.Decode(strings.TrimSpace(req.Token))
	if err != nil {
		return UnpackResult{}, r.reject(fmt.Errorf("%w: %w", ErrInvalidKey, err))
	}
	defer key.Zero()

	r.enter(Transforming)

	envelope, err := v.readAdmitted(record.Path)
	if err != nil {
		return UnpackResult{}, r.reject(err)
	}

	plaintext, err := v.engine.Decrypt(envelope, key)
	if err != nil {
		// A file too short for an IV is as unusable as one with bad padding.
		if errors.Is(err, encryption.ErrTruncatedEnvelope) {
			err = fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
		}

		return UnpackResult{}, r.reject(err)
	}
	defer clear(plaintext)

	outPath := filepath.Join(req.Destination, OutputName(record.Name))

	size, err := fileutil.WriteFile(v.fs, outPath, plaintext)
	if err != nil {
		r.path = outPath

		return UnpackResult{}, r.reject(ioError(err))
	}

	r.enter(Persisted)

	result := UnpackResult{
		Input:    record.Path,
		Output:   outPath,
		Size:     size,
		Checksum: checksum.Sum(plaintext),
	}

	r.enter(Reported)

	v.log.WithFields(logrus.Fields{
		"op":       r.op,
		"input":    result.Input,
		"output":   result.Output,
		"size":     result.Size,
		"checksum": result.Checksum,
	}).Info("unpacked file")

	return result, nil
}
