// compileinfoprint is imported by the cladesum binaries for the side effect of
// stamping their build info on os.Stderr, ahead of any log output.
package compileinfoprint

import "github.com/carbocation/cladesum/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
