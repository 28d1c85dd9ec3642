package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildVersionString(t *testing.T) {
	t.Parallel()

	s := BuildVersionString("Casper client")
	require.True(t, strings.HasPrefix(s, "Casper client\n"))
	require.Contains(t, s, "Version:\t"+Version())
	require.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)

	require.Equal(t,
		"casper-client/"+Version()+"/"+runtime.GOOS+"-"+runtime.GOARCH,
		BuildClientVersion("casper-client"))
}
