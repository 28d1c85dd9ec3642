package version

import (
	"errors"
	"regexp"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
)

type versionInfo struct {
	GitTag      string
	GitRevCount string
	GitCommit   string
}

var (
	// Overridden at link time with -ldflags "-X .../version.versionMagic=<tag>-<revcount>-<commit>".
	versionMagic          = "qm5h7IEa3ahXUgsPknK8bwWulPEmpgMWSaQSaOUa"
	versionInfoCache      versionInfo
	versionInfoCacheMutex sync.Mutex
)

const (
	defaultVersion  string = "0.1.0"
	unknownRevision string = "0"
	unknownVersion  string = "<unknown>"
)

func GetVersionInfo() versionInfo {
	versionInfoCacheMutex.Lock()
	defer versionInfoCacheMutex.Unlock()
	if versionInfoCache.GitRevCount == "" {
		re := regexp.MustCompile(`(\d+\.\d+\.\d+)-(\d+)-([a-f0-9]+)`)
		matches := re.FindStringSubmatch(versionMagic)

		if len(matches) == 0 {
			if gitCommit, err := parseBuildInfo(); err == nil {
				versionInfoCache = versionInfo{GitTag: defaultVersion, GitRevCount: "1", GitCommit: gitCommit}
			} else {
				versionInfoCache = versionInfo{GitTag: defaultVersion, GitRevCount: "1", GitCommit: unknownVersion}
			}
		} else {
			versionInfoCache = versionInfo{GitTag: matches[1], GitRevCount: matches[2], GitCommit: matches[3]}
		}
	}
	return versionInfoCache
}

func parseBuildInfo() (string, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", errors.New("failed to read build info")
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value, nil
		}
	}
	return unknownVersion, nil
}

// Version returns the bare semantic version, e.g. "1.5.0".
func Version() string {
	ver := GetVersionInfo().GitTag
	if ver == "" {
		return unknownVersion
	}
	// Tags may carry a prefix, e.g. "casper-client-1.5.0".
	if idx := strings.LastIndex(ver, "-"); idx >= 0 {
		ver = ver[idx+1:]
	}
	return ver
}

func buildVersionString(tmpl, appTitle string) string {
	info := GetVersionInfo()
	revision := info.GitRevCount
	if revision == "" {
		revision = unknownRevision
	}

	msg, err := common.ParseTemplate(tmpl, map[string]any{
		"Title":    appTitle,
		"Version":  Version(),
		"OS":       runtime.GOOS,
		"Arch":     runtime.GOARCH,
		"Commit":   info.GitCommit,
		"Revision": revision,
	})
	if err != nil {
		panic(err)
	}
	return msg
}

func BuildVersionString(appTitle string) string {
	return buildVersionString(versionTmpl, appTitle)
}

// BuildClientVersion is sent as the User-Agent of RPC requests.
func BuildClientVersion(appTitle string) string {
	return buildVersionString(clientVersionTmpl, appTitle)
}

var versionTmpl = `{{ .Title }}
 Version:	{{ .Version }}
 OS/Arch:	{{ .OS }}/{{ .Arch }}
 Git commit:	{{ .Commit }}
 Revision:	{{ .Revision }}`

var clientVersionTmpl = "{{ .Title }}/{{ .Version }}/{{ .OS }}-{{ .Arch }}"
