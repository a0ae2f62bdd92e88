// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// asset-tool
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cactus/go-assetd/pkg/assets"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/prometheus/common/version"
	"github.com/xlab/treeprint"
)

// TreeCmd holds command options for the tree command
type TreeCmd struct {
	All bool `name:"all" short:"a" help:"Include dot files"`
}

// Run runs the tree command
func (cmd *TreeCmd) Run(cli *CLI) error {
	dir, err := cli.publicDir()
	if err != nil {
		return err
	}
	out, err := renderTree(dir, cmd.All)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// ResolveCmd holds command options for the resolve command
type ResolveCmd struct {
	Path string `arg:"" name:"PATH" help:"URL path (or url) to resolve"`
}

// Run runs the resolve command
func (cmd *ResolveCmd) Run(cli *CLI) error {
	dir, err := cli.publicDir()
	if err != nil {
		return err
	}
	return resolve(os.Stdout, dir, cmd.Path)
}

type CLI struct {
	// global options
	Version kong.VersionFlag `name:"version" short:"V" help:"Print version information and quit"`
	Dir     string           `name:"dir" short:"d" type:"existingdir" help:"Public directory. Defaults to ../public relative to this binary"`

	// subcommands
	Tree    TreeCmd    `cmd:"" help:"Print the public directory as a tree"`
	Resolve ResolveCmd `cmd:"" aliases:"res" help:"Print the file a url path is served from"`
}

func (cli *CLI) publicDir() (string, error) {
	if cli.Dir != "" {
		return filepath.Abs(cli.Dir)
	}
	return assets.DefaultPublicDir()
}

func renderTree(root string, all bool) (string, error) {
	tree := treeprint.New()
	tree.SetValue(root)
	if err := addEntries(tree, root, all); err != nil {
		return "", err
	}
	return tree.String(), nil
}

func addEntries(branch treeprint.Tree, dir string, all bool) error {
	// ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if !all && strings.HasPrefix(name, ".") {
			continue
		}

		switch {
		case e.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(filepath.Join(dir, name))
			if err != nil {
				target = "?"
			}
			branch.AddNode(name + " -> " + target)
		case e.IsDir():
			sub := branch.AddBranch(name + "/")
			if err := addEntries(sub, filepath.Join(dir, name), all); err != nil {
				return err
			}
		default:
			info, err := e.Info()
			if err != nil {
				return err
			}
			branch.AddMetaNode(info.Size(), name)
		}
	}
	return nil
}

func resolve(w io.Writer, root, target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return err
	}

	p, err := assets.PublicDirMapper(root)(u.Path)
	if err != nil {
		fmt.Fprintln(w, color.RedString("rejected: %s", u.Path))
		return err
	}

	info, err := os.Stat(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, color.YellowString("%s (not found)", p))
	case err != nil:
		fmt.Fprintln(w, color.YellowString("%s (%s)", p, err))
	case info.IsDir():
		fmt.Fprintln(w, color.BlueString("%s%c", p, filepath.Separator))
	default:
		fmt.Fprintln(w, color.GreenString("%s", p))
	}
	return nil
}

// #nosec G104
func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("asset-tool"),
		kong.Description("Inspect the public directory served by go-assetd"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Print("asset-tool")},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
