package trace

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/bulldog-os/bulldog/go/cmd"
	"github.com/bulldog-os/bulldog/go/models/trace"
)

func Print(w io.Writer, tf *trace.TraceReader, asJson bool) error {
	if asJson {
		out, err := json.Marshal(&tf.Header)
		if err != nil {
			return errors.Wrap(err, "error printing header")
		}
		fmt.Fprintf(w, "%s\n", out)
	} else {
		fmt.Fprintf(w, "# bulldog trace v%d, host %s\n", tf.Header.Version, tf.Header.Hostname)
	}
	for {
		rec, err := tf.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrap(err, "error reading next trace record")
		}
		if asJson {
			out, _ := json.Marshal(rec)
			fmt.Fprintf(w, "%s\n", out)
		} else {
			fmt.Fprintln(w, rec.String())
		}
	}
}

func Main(args []string) {
	fs := flag.NewFlagSet("args", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output trace as line-delimited JSON objects")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <tracefile>\n", args[0])
		fs.PrintDefaults()
	}
	fs.Parse(args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open: %s %v\n", fs.Arg(0), err)
		os.Exit(1)
	}
	tf, err := trace.NewReader(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening trace file: %v\n", err)
		os.Exit(1)
	}
	defer tf.Close()
	if err := Print(os.Stdout, tf, *jsonFlag); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func init() { cmd.Register("trace", "print a recorded syscall trace", Main) }
