package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
	"github.com/zeebo/uintarray"
)

var (
	elemBits    = flag.Uint("elem_bits", 8, "bits per element")
	backingBits = flag.Uint("backing_bits", 128, "bits in the backing word")
	count       = flag.Int("count", 100000, "number of arrays to store")
	file        = flag.String("file", "data/table", "path of the table file")
	httpAddr    = flag.String("http", "", "address to serve stats on; waits for ctrl+c when set")

	rng pcg.T
)

// stats prints a line per timed table operation with its call count, total
// and mean duration, and the 99th percentile.
func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "op\tcalls\ttotal\tmean\tp99")
	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\t%v\n",
			name[strings.LastIndexByte(name, '.')+1:], state.Total(),
			time.Duration(sum), time.Duration(avg), time.Duration(state.Quantile(.99)))
		return true
	})
}

func main() {
	flag.Parse()

	defer stats()
	if *httpAddr != "" {
		go http.ListenAndServe(*httpAddr, monhandler.Handler{})
	}

	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}

	if *httpAddr != "" {
		fmt.Println("done. waiting for ctrl+c...")
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT)
		<-ch
		fmt.Println()
	}
}

// randomArray fills an empty array to a random length with random values
// that fit the element width.
func randomArray(empty uintarray.Array) (uintarray.Array, error) {
	mask := uint64(1)<<empty.ElementBits() - 1
	vs := make([]uint64, rng.Uint32n(uint32(empty.Cap())+1))
	for i := range vs {
		vs[i] = rng.Uint64() & mask
	}
	return empty.Extend(vs...)
}

func run() error {
	empty, err := uintarray.New(*elemBits, *backingBits)
	if err != nil {
		return errs.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(*file), 0755); err != nil {
		return errs.Wrap(err)
	}

	fh, err := os.OpenFile(*file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errs.Wrap(err)
	}
	defer fh.Close()

	tbl, err := uintarray.OpenTable(fh, *elemBits, *backingBits)
	if err != nil {
		return errs.Wrap(err)
	}
	defer tbl.Close()

	fmt.Printf("TABLE: elem: %d backing: %d cap: %d\n",
		empty.ElementBits(), empty.BackingBits(), empty.Cap())

	exp := make([]uintarray.Array, 0, *count)
	for i := 0; i < *count; i++ {
		if *count >= 10 && i > 0 && i%(*count/10) == 0 {
			fmt.Printf("progress: %0.2f\n", 100*float64(i)/float64(*count))
			stats()
		}

		a, err := randomArray(empty)
		if err != nil {
			return errs.Wrap(err)
		}
		if _, err := tbl.Append(a); err != nil {
			return errs.Wrap(err)
		}
		exp = append(exp, a)
	}

	if err := tbl.Sync(); err != nil {
		return errs.Wrap(err)
	}

	fmt.Printf("TABLE: auditing %d arrays\n", len(exp))
	for i, a := range exp {
		got, err := tbl.Get(i)
		if err != nil {
			return errs.Wrap(err)
		}
		if !got.Equal(a) {
			return errs.New("mismatch at %d: got %v expected %v", i, got, a)
		}
	}

	fmt.Println("done.")
	return nil
}
