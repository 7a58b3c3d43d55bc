// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/segrep/pkg/replace"
	"github.com/walteh/segrep/pkg/text"
)

func ExampleApply() {
	pipeline := replace.Pipeline[string]{
		replace.Entry("World", func(string, replace.Meta) string { return "Universe" }),
		replace.Entry("Hello", func(string, replace.Meta) string { return "Hi" }),
	}

	result, err := text.Apply(context.Background(), strings.NewReader("Hello World!"), pipeline)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}

func ExampleDiff() {
	fmt.Print(text.Diff("notes.txt", "one\ntwo\n", "one\n2\n"))

	// Output:
	// --- notes.txt
	// +++ notes.txt
	//  one
	// -two
	// +2
}
