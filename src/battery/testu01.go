//go:build testu01

package battery

/*
#cgo CFLAGS: -I/usr/local/include -I/usr/include/TestU01
#cgo LDFLAGS: -ltestu01 -lprobdist -lmylib -lm
#include <stdlib.h>
#include <bbattery.h>

static double crush_pval(int i) { return bbattery_pVal[i]; }
static char *crush_test_name(int i) { return bbattery_TestNames[i]; }
*/
import "C"
import (
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// TestU01 keeps battery results in globals.
var testu01Mu sync.Mutex

type smallCrush struct{}

// NewSmallCrush returns the TestU01 SmallCrush battery.
func NewSmallCrush() (Battery, error) { return smallCrush{}, nil }

func (smallCrush) Name() string { return "SmallCrush" }

func (smallCrush) RunFile(path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, "smallcrush")
	}

	testu01Mu.Lock()
	defer testu01Mu.Unlock()

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	C.bbattery_SmallCrushFile(cpath)

	n := int(C.bbattery_NTests)
	report := &Report{Battery: "SmallCrush", Results: make([]Result, 0, n)}
	for i := 0; i < n; i++ {
		p := float64(C.crush_pval(C.int(i)))
		if p < 0 {
			continue
		}
		report.Results = append(report.Results, Result{
			Name:   C.GoString(C.crush_test_name(C.int(i))),
			PValue: p,
		})
	}
	return report, nil
}
