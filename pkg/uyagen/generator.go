package uyagen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Functions called one by one from main before the strided batch.
	directCalls = 100
	// Upper bound on the index span covered by the strided batch.
	batchSpan   = 500
	batchStride = 10

	groupSize     = 100
	progressEvery = 1000
	structEvery   = 20
)

const (
	sectionStructs   = "// ========== 结构体定义 =========="
	sectionHelpers   = "// ========== 辅助函数 =========="
	sectionFunctions = "// ========== 主要函数 =========="
	sectionMain      = "// ========== 主函数 =========="
)

func writeLine(b *strings.Builder, indent int, s string) {
	for i := 0; i < indent; i++ {
		b.WriteString("    ")
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

func section(title string) string {
	return title + "\n\n"
}

// Header is the two-line banner at the top of every fixture.
func Header(functionCount, structCount int) string {
	var b strings.Builder
	writeLine(&b, 0, "// 大型 Uya 程序 - 编译器性能测试")
	writeLine(&b, 0, fmt.Sprintf("// 包含 %d 个函数和 %d 个结构体", functionCount, structCount))
	b.WriteByte('\n')
	return b.String()
}

// StructDecl renders struct Struct{i} followed by a blank line.
func StructDecl(i int) string {
	var b strings.Builder
	writeLine(&b, 0, fmt.Sprintf("struct %s {", structName(i)))
	for _, f := range structFields {
		writeLine(&b, 1, fmt.Sprintf("%s: %s,", f.Name, f.Type.Name))
	}
	writeLine(&b, 0, "}")
	b.WriteByte('\n')
	return b.String()
}

var helperFuncs = []struct {
	name string
	op   string
}{
	{"add", "+"},
	{"multiply", "*"},
	{"subtract", "-"},
}

// HelperFuncs renders add, multiply and subtract.
func HelperFuncs() string {
	var b strings.Builder
	for _, h := range helperFuncs {
		writeLine(&b, 0, fmt.Sprintf("fn %s(x: i32, y: i32) i32 {", h.name))
		writeLine(&b, 1, fmt.Sprintf("return x %s y;", h.op))
		writeLine(&b, 0, "}")
		b.WriteByte('\n')
	}
	return b.String()
}

// GroupComment returns the separator emitted before function i, or "" when
// i does not start a group.
func GroupComment(i int) string {
	if i%groupSize != 0 {
		return ""
	}
	return fmt.Sprintf("// 函数组 %d\n\n", i/groupSize+1)
}

// UsesStruct reports whether test_function_{i} builds a struct literal, and
// which struct it references.
func UsesStruct(i, structCount int) (int, bool) {
	if i%structEvery != 0 {
		return 0, false
	}
	idx := i / structEvery
	return idx, idx < structCount
}

// FunctionBody renders the statements of test_function_{i}, without the
// signature and closing brace. It depends only on its arguments.
func FunctionBody(i, structCount int) string {
	var b strings.Builder
	for _, v := range []string{"result", "counter", "acc", "sum"} {
		writeLine(&b, 1, fmt.Sprintf("var %s: i32 = 0;", v))
	}

	switch i % 3 {
	case 0:
		writeLine(&b, 1, "result = add(x, y);")
		writeLine(&b, 1, fmt.Sprintf("result = multiply(result, %d);", i%100))
		writeLine(&b, 1, "const temp1: i32 = result * 2;")
		writeLine(&b, 1, "const temp2: i32 = result + temp1;")
		writeLine(&b, 1, "result = temp2 - result;")
	case 1:
		writeLine(&b, 1, "result = subtract(x, y);")
		writeLine(&b, 1, fmt.Sprintf("result = multiply(result, %d);", i%50+1))
		writeLine(&b, 1, "const temp: i32 = result / 2;")
		writeLine(&b, 1, "result = result + temp;")
	default:
		writeLine(&b, 1, "result = multiply(x, y);")
		writeLine(&b, 1, fmt.Sprintf("result = add(result, %d);", i%200))
		writeLine(&b, 1, "const val1: i32 = result;")
		writeLine(&b, 1, "const val2: i32 = val1 * 3;")
		writeLine(&b, 1, "result = val2 - val1;")
	}

	if i%5 == 0 {
		writeLine(&b, 1, fmt.Sprintf("while counter < %d {", i%20+1))
		writeLine(&b, 2, "result = result + counter;")
		writeLine(&b, 2, "counter = counter + 1;")
		writeLine(&b, 1, "}")
	}

	if i%7 == 0 {
		writeLine(&b, 1, fmt.Sprintf("if result > %d {", i%1000))
		writeLine(&b, 2, "result = result * 2;")
		writeLine(&b, 1, "} else {")
		writeLine(&b, 2, "result = result + 10;")
		writeLine(&b, 1, "}")
	}

	if idx, ok := UsesStruct(i, structCount); ok {
		writeLine(&b, 1, structLiteral(idx))
		writeLine(&b, 1, "result = result + s.field1;")
		writeLine(&b, 1, "result = result + s.field4;")
	}

	writeLine(&b, 1, "acc = result * 3;")
	writeLine(&b, 1, "sum = acc + result;")
	writeLine(&b, 1, "result = sum - acc;")
	writeLine(&b, 1, fmt.Sprintf("const final_val: i32 = result + %d;", i%1000))
	writeLine(&b, 1, "result = final_val;")
	writeLine(&b, 1, "return result;")
	return b.String()
}

func structLiteral(idx int) string {
	inits := make([]string, 0, len(structFields))
	for _, f := range structFields {
		inits = append(inits, fmt.Sprintf("%s: %s", f.Name, castTo(f.Type, "result")))
	}
	name := structName(idx)
	return fmt.Sprintf("const s: %s = %s{ %s };", name, name, strings.Join(inits, ", "))
}

// FunctionDecl renders test_function_{i} including its trailing blank line.
// The group separator is not part of the declaration.
func FunctionDecl(i, structCount int) string {
	var b strings.Builder
	writeLine(&b, 0, fmt.Sprintf("fn %s(x: i32, y: i32) i32 {", functionName(i)))
	b.WriteString(FunctionBody(i, structCount))
	writeLine(&b, 0, "}")
	b.WriteByte('\n')
	return b.String()
}

// Call is one invocation emitted into main.
type Call struct {
	Index int
	X, Y  int
	// Batch is false for the direct calls and true for the strided ones.
	Batch bool
}

func (c Call) String() string {
	return fmt.Sprintf("total = total + %s(%d, %d);", functionName(c.Index), c.X, c.Y)
}

// MainCalls lists the calls main makes for a fixture with functionCount
// test functions, in emission order.
func MainCalls(functionCount int) []Call {
	n := min(directCalls, functionCount)
	batch := min(batchSpan, functionCount-n)
	calls := make([]Call, 0, max(n, 0)+max(batch, 0)/batchStride+1)
	for i := 0; i < n; i++ {
		calls = append(calls, Call{Index: i, X: i % 100, Y: (i * 2) % 100})
	}
	for i := n; i < n+batch; i += batchStride {
		calls = append(calls, Call{Index: i, X: i % 100, Y: (i * 3) % 100, Batch: true})
	}
	return calls
}

// MainFunc renders the driver function.
func MainFunc(functionCount int) string {
	var b strings.Builder
	writeLine(&b, 0, "fn main() i32 {")
	writeLine(&b, 1, "var total: i32 = 0;")
	writeLine(&b, 1, "var i: i32 = 0;")
	b.WriteByte('\n')

	writeLine(&b, 1, fmt.Sprintf("// 调用前 %d 个函数", min(directCalls, functionCount)))
	calls := MainCalls(functionCount)
	j := 0
	for ; j < len(calls) && !calls[j].Batch; j++ {
		writeLine(&b, 1, calls[j].String())
	}

	b.WriteByte('\n')
	writeLine(&b, 1, "// 批量调用更多函数")
	for ; j < len(calls); j++ {
		writeLine(&b, 1, calls[j].String())
	}

	b.WriteByte('\n')
	writeLine(&b, 1, "return total;")
	writeLine(&b, 0, "}")
	return b.String()
}

// Stats summarizes a finished generation run.
type Stats struct {
	Functions int
	Structs   int
	Bytes     int64
}

// MiB returns the fixture size in mebibytes.
func (s Stats) MiB() float64 {
	return float64(s.Bytes) / (1024 * 1024)
}

// Generate streams a fixture built from opts into w. opts.OutputPath is
// ignored. A nil p disables progress reporting.
func Generate(w io.Writer, opts Options, p Progress) (Stats, error) {
	if err := opts.validateCounts(); err != nil {
		return Stats{}, err
	}
	if p == nil {
		p = NopProgress
	}
	gen := createFixtureGenerator(opts, p)
	gen.initialize(w)
	return gen.goGenerator()
}

// outputFile is the part of *os.File that GenerateFile relies on.
type outputFile interface {
	io.WriteCloser
	Stat() (os.FileInfo, error)
}

var createOutput = func(path string) (outputFile, error) {
	return os.Create(path)
}

// GenerateFile writes the fixture to opts.OutputPath, creating or truncating
// it. The path is used literally; stream to os.Stdout with Generate instead.
// The returned size is the one the file system reports for the written file.
func GenerateFile(opts Options, p Progress) (st Stats, err error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}

	f, err := createOutput(opts.OutputPath)
	if err != nil {
		return Stats{}, errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()

	st, err = Generate(f, opts, p)
	if err != nil {
		return st, err
	}

	info, err := f.Stat()
	if err != nil {
		return st, errors.Wrap(err, "stat output")
	}
	st.Bytes = info.Size()
	return st, nil
}
