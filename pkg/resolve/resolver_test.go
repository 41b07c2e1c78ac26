package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

// baseRequest models the default AutoQC release channel against temp dirs.
func baseRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		TargetName:          "AutoQC",
		Publisher:           "MacCoss Lab, UW",
		ReferenceFile:       "AutoQC.appref-ms",
		ExecutableFile:      "AutoQC.exe",
		AcceptedExecutables: []string{"AutoQC.exe", "AutoQC-daily.exe"},
		ShortcutsDir:        filepath.Join(t.TempDir(), "shortcuts"),
		ExecDir:             filepath.Join(t.TempDir(), "bin"),
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	req := baseRequest(t)
	req.ExplicitPath = filepath.Join(t.TempDir(), "AutoQC.exe")
	touch(t, req.ExplicitPath)

	// Even with a discoverable reference file present, the explicit path
	// wins without any other strategy being attempted.
	touch(t, filepath.Join(req.ShortcutsDir, req.Publisher, req.ReferenceFile))

	ref, err := Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, req.ExplicitPath, ref.Path)
	assert.Equal(t, KindExecutable, ref.Kind)
}

func TestResolve_ExplicitPathMissing(t *testing.T) {
	req := baseRequest(t)
	req.ExplicitPath = filepath.Join(t.TempDir(), "AutoQC.exe")

	_, err := Resolve(req)
	assert.ErrorIs(t, err, ErrBadExplicitPath)
}

func TestResolve_ExplicitPathWrongName(t *testing.T) {
	req := baseRequest(t)
	req.ExplicitPath = filepath.Join(t.TempDir(), "NotAutoQC.exe")
	touch(t, req.ExplicitPath)

	// Auto-discovery would succeed, but a bad explicit path is a hard
	// stop, never a fallback trigger.
	touch(t, filepath.Join(req.ShortcutsDir, req.Publisher, req.ReferenceFile))

	_, err := Resolve(req)
	assert.ErrorIs(t, err, ErrBadExplicitPath)
}

func TestResolve_ReferenceUnderPublisher(t *testing.T) {
	req := baseRequest(t)
	req.ReferenceFile = "AutoQC-daily.appref-ms"

	want := filepath.Join(req.ShortcutsDir, req.Publisher, "AutoQC-daily.appref-ms")
	touch(t, want)
	// The release-channel file must never be consulted for the daily
	// channel.
	touch(t, filepath.Join(req.ShortcutsDir, req.Publisher, "AutoQC.appref-ms"))

	ref, err := Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, want, ref.Path)
	assert.Equal(t, KindApplicationReference, ref.Kind)
}

func TestResolve_ReferenceUnderTargetFolder(t *testing.T) {
	req := baseRequest(t)

	want := filepath.Join(req.ShortcutsDir, "AutoQC", req.ReferenceFile)
	touch(t, want)

	ref, err := Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, want, ref.Path)
	assert.Equal(t, KindApplicationReference, ref.Kind)
}

func TestResolve_PublisherFolderWinsOverTargetFolder(t *testing.T) {
	req := baseRequest(t)

	publisherPath := filepath.Join(req.ShortcutsDir, req.Publisher, req.ReferenceFile)
	touch(t, publisherPath)
	touch(t, filepath.Join(req.ShortcutsDir, "AutoQC", req.ReferenceFile))

	ref, err := Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, publisherPath, ref.Path)
}

func TestResolve_CoLocatedExecutable(t *testing.T) {
	req := baseRequest(t)

	want := filepath.Join(req.ExecDir, "AutoQC.exe")
	touch(t, want)

	ref, err := Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, want, ref.Path)
	assert.Equal(t, KindExecutable, ref.Kind)
}

func TestResolve_NothingFound(t *testing.T) {
	_, err := Resolve(baseRequest(t))
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ApplicationReference", KindApplicationReference.String())
	assert.Equal(t, "Executable", KindExecutable.String())
}
