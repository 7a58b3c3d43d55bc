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

/*
Package config loads segrep rules files and turns them into replacement pipelines.

	            +-------------+
	            |   Config    |
	            |   (Rules)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   HCL    | |   YAML   | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
  - Parses ordered replacement rules from HCL, YAML or JSON
  - Validates every rule before anything is replaced
  - Selects the rules that apply to a file through doublestar globs
  - Builds a replace.Pipeline[Replacement] that expands each rule's template

🔄 Flow:
 1. Load reads the file and picks a Parser by extension
 2. The parser decodes the format into a Config
 3. Validate checks the engine, every needle and every glob
 4. Pipeline(path) compiles the matching rules in file order

📝 Rules file:

	engine = "coregex"

	rule "flavour" {
	  literal = "vanilla"
	  replace = "magic"
	}

	rule "fish" {
	  pattern = "(crab|shark)"
	  replace = "<b>$0</b>"
	  files   = ["docs/**"]
	}

Templates see $0 (or ${match}) for the full match, $1.. for groups, ${key},
${rule}, ${needle} and ${index}. $$ is a literal dollar sign.
HCL reads "${" as interpolation, so braced names are written $${key} there.
HCL expressions may also call env, upper, lower, join and concat.
*/
package config
