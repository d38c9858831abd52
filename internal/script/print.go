/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package script

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"dirpx.dev/formlist/apis"
)

var (
	stepColor = color.New(color.FgCyan, color.Bold)
	keyColor  = color.New(color.FgYellow)
	pathColor = color.New(color.FgGreen)
)

type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) printer {
	return printer{out: out}
}

func (p printer) step(i int, st Step) {
	stepColor.Fprintf(p.out, "#%d %s", i, st.Op)
	switch st.Op {
	case OpInsert, OpRemove:
		fmt.Fprintf(p.out, " index=%d", *st.Index)
	case OpMove:
		fmt.Fprintf(p.out, " from=%d to=%d", *st.From, *st.To)
	case OpSet, OpResolve:
		fmt.Fprintf(p.out, " path=%s", st.Path)
	}
	if st.Value != nil {
		fmt.Fprintf(p.out, " value=%v", st.Value)
	}
	fmt.Fprintln(p.out)
}

func (p printer) resolved(address, name string) {
	fmt.Fprintf(p.out, "  %s -> ", address)
	pathColor.Fprintln(p.out, name)
}

// RenderTo returns a render function that prints one line per descriptor.
func RenderTo(out io.Writer) apis.RenderFunc {
	return func(descs []apis.Descriptor, _ apis.Operations) {
		fmt.Fprintf(out, "  render: %d row(s)\n", len(descs))
		for i, d := range descs {
			fmt.Fprintf(out, "    [%d] ", i)
			keyColor.Fprintf(out, "key=%d", d.Key)
			fmt.Fprint(out, " ")
			pathColor.Fprintf(out, "path=%s", d.Path)
			fmt.Fprintln(out)
		}
	}
}
