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

package config

import (
	"context"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. The home directory is exposed as the
// variable "home", so log_dir = "${home}/editor-logs" works.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*FileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// "home" is left undefined when it cannot be resolved, so a reference
	// to it fails to decode instead of expanding to ""
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{}}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		evalCtx.Variables["home"] = cty.StringVal(home)
	}

	// Define HCL schema
	type hclConfig struct {
		Mode           *string  `hcl:"mode,optional"`
		Concurrency    *int     `hcl:"concurrency,optional"`
		FollowSymlinks *bool    `hcl:"follow_symlinks,optional"`
		LogDir         *string  `hcl:"log_dir,optional"`
		Include        []string `hcl:"include,optional"`
		Exclude        []string `hcl:"exclude,optional"`
		Diff           *bool    `hcl:"diff,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	fc := &FileConfig{
		FollowSymlinks: hclCfg.FollowSymlinks,
		Include:        hclCfg.Include,
		Exclude:        hclCfg.Exclude,
		Diff:           hclCfg.Diff,
	}
	if hclCfg.Mode != nil {
		fc.Mode = *hclCfg.Mode
	}
	if hclCfg.Concurrency != nil {
		fc.Concurrency = *hclCfg.Concurrency
	}
	if hclCfg.LogDir != nil {
		fc.LogDir = *hclCfg.LogDir
	}

	return fc, nil
}
