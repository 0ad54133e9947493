package doctor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joomcode/errorx"

	"github.com/cardano-ops/cnodectl/internal/config"
	"github.com/cardano-ops/cnodectl/internal/core"
	"github.com/cardano-ops/cnodectl/internal/version"
	"github.com/cardano-ops/cnodectl/pkg/exit"
	"github.com/cardano-ops/cnodectl/pkg/logx"
)

type ErrorDiagnosis struct {
	Error      error    `yaml:"error" json:"error"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause" json:"cause"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	TraceId    string   `yaml:"traceId" json:"traceId"`
	Commit     string   `yaml:"commit" json:"commit"`
	Version    string   `yaml:"version" json:"version"`
	Pid        int      `yaml:"pid" json:"pid"`
	ExitCode   int      `yaml:"exitCode" json:"exitCode"`
	Code       int      `yaml:"code" json:"code"`
	Logfile    string   `yaml:"log" json:"log"`
	Snapshot   string   `yaml:"snapshot" json:"snapshot"`
	Resolution []string `yaml:"steps" json:"steps"`
}

// ErrPropertyResolution lets an error carry its own resolution instruction.
var ErrPropertyResolution = errorx.RegisterPrintableProperty("resolution")

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return 10400
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	if instruction, ok := errorx.ExtractProperty(err, ErrPropertyResolution); ok {
		return []string{instruction.(string)}
	}

	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure %q is provided.", arg.(string))}
		}
		return []string{"Ensure all required arguments are provided."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg.(string))}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// takeSnapshot writes the error stack trace under the diagnostics directory
// and returns the snapshot file path.
func takeSnapshot(ex error) string {
	timestamp := time.Now().Format("20060102-150405")

	snapshotDir := path.Join(core.Paths().DiagnosticsDir, timestamp)
	if err := os.MkdirAll(snapshotDir, core.DefaultFilePerm); err != nil {
		log.Printf("failed to create diagnostics directory: %v", err)
		return ""
	}

	stacktraceFile := filepath.Join(snapshotDir, "stacktrace-"+timestamp+".txt")
	f, err := os.Create(stacktraceFile)
	if err != nil {
		log.Printf("failed to create stacktrace file: %v", err)
		return ""
	}
	defer f.Close()

	if ex != nil {
		_, _ = fmt.Fprintf(f, "%+v\n", ex)
	} else {
		// Capture current stack trace if no error provided
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		_, _ = f.Write(buf[:n])
	}

	return stacktraceFile
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	var traceId string
	if ctx.Value("traceId") != nil {
		traceId = ctx.Value("traceId").(string)
	}

	msg, cause := toErrorMessage(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		ExitCode:   exit.CodeOf(ex).Int(),
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    config.Get().Log.Filename,
		Snapshot:   takeSnapshot(ex),
		Resolution: findResolution(ex),
	}
}

// CheckErr prints diagnosis and terminates the process with the exit code
// bound to the error (a plain error maps to exit code 1, a CommandError keeps
// the child process's own exit code).
// Optional instructions can be provided to give additional context to the user.
func CheckErr(ctx context.Context, err error, instructions ...string) {
	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)

	fmt.Printf("\n%s%s************************************** Error Diagnostics ******************************************%s\n", Bold, Red, Reset)
	fmt.Printf("%s*%s\t%sError:%s %s\n", Red, Reset, Bold+White, Reset, resp.Message)
	if resp.Cause != "" {
		fmt.Printf("%s*%s\t%sCause:%s %s\n", Red, Reset, Bold+White, Reset, resp.Cause)
	}
	fmt.Printf("%s*%s\t%sError Type:%s %s\n", Red, Reset, Bold+White, Reset, resp.ErrorType)
	fmt.Printf("%s*%s\t%sError Code:%s %d\n", Red, Reset, Bold+White, Reset, resp.Code)
	fmt.Printf("%s*%s\t%sCommit:%s %s\n", Red, Reset, Gray, Reset, resp.Commit)
	fmt.Printf("%s*%s\t%sPid:%s %d\n", Red, Reset, Gray, Reset, resp.Pid)
	fmt.Printf("%s*%s\t%sTraceId:%s %s\n", Red, Reset, Gray, Reset, resp.TraceId)
	fmt.Printf("%s*%s\t%sVersion:%s %s\n", Red, Reset, Gray, Reset, resp.Version)
	if resp.Logfile != "" {
		fmt.Printf("%s*%s\t%sLogfile:%s %s\n", Red, Reset, Cyan, Reset, resp.Logfile)
	}
	if resp.Snapshot != "" {
		fmt.Printf("%s*%s\t%sSnapshot:%s %s\n", Red, Reset, Cyan, Reset, resp.Snapshot)
	}
	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Red, Reset)
	fmt.Printf("\n%s%s****************************************** Resolution *********************************************%s\n", Bold, Yellow, Reset)

	// Print custom instructions first if provided
	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				fmt.Printf("%s*%s\n", Yellow, Reset)
			} else {
				fmt.Printf("%s*%s\t%s\n", Yellow, Reset, Bold+White+line+Reset)
			}
		}
		if len(resp.Resolution) > 0 {
			fmt.Printf("%s*%s\n", Yellow, Reset)
		}
	}

	// Print default resolution steps
	for _, r := range resp.Resolution {
		fmt.Printf("%s*%s\t%s\n", Yellow, Reset, White+r+Reset)
	}

	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Yellow, Reset)

	exit.Code(resp.ExitCode).TerminateProcess()
}
