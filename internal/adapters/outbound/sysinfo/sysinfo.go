package sysinfo

import (
	"context"
	"math"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/klauspost/cpuid/v2"
	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
	"github.com/seatbelt/seatbelt/internal/domain"
)

const gib = 1024 * 1024 * 1024

// macOS marketing names by major version.
var macCodenames = map[string]string{
	"11": "Big Sur",
	"12": "Monterey",
	"13": "Ventura",
	"14": "Sonoma",
	"15": "Sequoia",
	"26": "Tahoe",
}

// Prober implements domain.SystemProbe.
type Prober struct {
	runner    shell.Runner
	logger    *zap.Logger
	goos      string
	osRelease string
	diskPath  string
}

func New(runner shell.Runner, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		runner:    runner,
		logger:    logger,
		goos:      runtime.GOOS,
		osRelease: "/etc/os-release",
		diskPath:  "/",
	}
}

// WithPlatform overrides the detected OS and the os-release location.
func (p *Prober) WithPlatform(goos, osRelease string) *Prober {
	p.goos = goos
	p.osRelease = osRelease
	return p
}

// WithDiskPath sets the filesystem whose free space is reported.
func (p *Prober) WithDiskPath(path string) *Prober {
	p.diskPath = path
	return p
}

func (p *Prober) System(ctx context.Context) domain.SystemFacts {
	f := domain.SystemFacts{
		OSName:     domain.Absent,
		OSVersion:  domain.Absent,
		OSCodename: domain.Absent,
		Arch:       runtime.GOARCH,
		Chip:       p.chip(ctx),
		Cores:      runtime.NumCPU(),
		MemoryGB:   toGB(memoryBytes()),
		DiskFreeGB: toGB(diskFreeBytes(p.diskPath)),
	}

	switch p.goos {
	case "darwin":
		p.darwinRelease(ctx, &f)
	case "linux":
		p.linuxRelease(&f)
	default:
		f.OSName = p.goos
	}
	return f
}

func (p *Prober) linuxRelease(f *domain.SystemFacts) {
	vals, err := godotenv.Read(p.osRelease)
	if err != nil {
		p.logger.Debug("os-release unreadable", zap.String("path", p.osRelease), zap.Error(err))
		f.OSName = "Linux"
		return
	}
	f.OSName = orAbsent(vals["NAME"])
	f.OSVersion = orAbsent(vals["VERSION_ID"])
	f.OSCodename = orAbsent(vals["VERSION_CODENAME"])
}

func (p *Prober) darwinRelease(ctx context.Context, f *domain.SystemFacts) {
	f.OSName = "macOS"
	if res, err := p.runner.Run(ctx, "sw_vers", "-productName"); err == nil && res.OK() {
		f.OSName = orAbsent(shell.FirstLine(res.Stdout))
	}
	res, err := p.runner.Run(ctx, "sw_vers", "-productVersion")
	if err != nil || !res.OK() {
		return
	}
	version := shell.FirstLine(res.Stdout)
	f.OSVersion = orAbsent(version)
	major, _, _ := strings.Cut(version, ".")
	if name, ok := macCodenames[major]; ok {
		f.OSCodename = name
	}
}

func (p *Prober) chip(ctx context.Context) string {
	if brand := strings.TrimSpace(cpuid.CPU.BrandName); brand != "" {
		return brand
	}
	if p.goos == "darwin" {
		res, err := p.runner.Run(ctx, "sysctl", "-n", "machdep.cpu.brand_string")
		if err == nil && res.OK() {
			return orAbsent(shell.FirstLine(res.Stdout))
		}
	}
	return domain.Absent
}

func toGB(b uint64) float64 {
	return math.Round(float64(b)/gib*10) / 10
}

func orAbsent(s string) string {
	if s == "" {
		return domain.Absent
	}
	return s
}
