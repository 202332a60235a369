package sysinfo_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell/shelltest"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/sysinfo"
	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ubuntuRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
VERSION="24.04.1 LTS (Noble Numbat)"
VERSION_CODENAME=noble
ID=ubuntu
`

func TestSystem_LinuxOSRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(ubuntuRelease), 0o644))

	p := sysinfo.New(shelltest.NewFake(), nil).WithPlatform("linux", path)
	f := p.System(context.Background())

	assert.Equal(t, "Ubuntu", f.OSName)
	assert.Equal(t, "24.04", f.OSVersion)
	assert.Equal(t, "noble", f.OSCodename)
	assert.Equal(t, runtime.GOARCH, f.Arch)
	assert.Equal(t, runtime.NumCPU(), f.Cores)
	assert.NotEmpty(t, f.Chip)
	assert.GreaterOrEqual(t, f.MemoryGB, 0.0)
	assert.GreaterOrEqual(t, f.DiskFreeGB, 0.0)
}

func TestSystem_LinuxMissingOSRelease(t *testing.T) {
	p := sysinfo.New(shelltest.NewFake(), nil).WithPlatform("linux", filepath.Join(t.TempDir(), "nope"))
	f := p.System(context.Background())

	assert.Equal(t, "Linux", f.OSName)
	assert.Equal(t, domain.Absent, f.OSVersion)
	assert.Equal(t, domain.Absent, f.OSCodename)
}

func TestSystem_Darwin(t *testing.T) {
	fake := shelltest.NewFake("sw_vers", "sysctl").
		On("sw_vers -productName", shell.Result{Stdout: "macOS\n"}).
		On("sw_vers -productVersion", shell.Result{Stdout: "15.1.1\n"}).
		On("sysctl -n machdep.cpu.brand_string", shell.Result{Stdout: "Apple M3 Pro\n"})

	f := sysinfo.New(fake, nil).WithPlatform("darwin", "").System(context.Background())

	assert.Equal(t, "macOS", f.OSName)
	assert.Equal(t, "15.1.1", f.OSVersion)
	assert.Equal(t, "Sequoia", f.OSCodename)
	assert.NotEqual(t, domain.Absent, f.Chip)
}

func TestSystem_DarwinSwVersFails(t *testing.T) {
	f := sysinfo.New(shelltest.NewFake(), nil).WithPlatform("darwin", "").System(context.Background())

	assert.Equal(t, "macOS", f.OSName)
	assert.Equal(t, domain.Absent, f.OSVersion)
}

func TestSystem_OtherPlatform(t *testing.T) {
	f := sysinfo.New(shelltest.NewFake(), nil).WithPlatform("plan9", "").System(context.Background())
	assert.Equal(t, "plan9", f.OSName)
}
