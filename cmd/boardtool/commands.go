// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
	"github.com/urfave/cli/v2"
)

var (
	timestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "timestamp of the new leaf, the current unix time if zero",
	}
	metadataFlag = cli.StringFlag{
		Name:  "metadata",
		Usage: "opaque metadata attached to the published root",
	}
	outputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "file to export to, stdout if empty",
	}
)

var InfoCmd = cli.Command{
	Action: withBoard(doInfo),
	Name:   "info",
	Usage:  "summarizes the content of the board",
}

var RootsCmd = cli.Command{
	Action: withBoard(doRoots),
	Name:   "roots",
	Usage:  "lists the published roots, oldest first",
}

var OrphansCmd = cli.Command{
	Action: withBoard(doOrphans),
	Name:   "orphans",
	Usage:  "lists leaves and branches without parent",
}

var GetCmd = cli.Command{
	Action:    withBoard(doGet),
	Name:      "get",
	Usage:     "prints the record of a hash",
	ArgsUsage: "<hash>",
}

var AddLeafCmd = cli.Command{
	Action:    withBoard(doAddLeaf),
	Name:      "add-leaf",
	Usage:     "adds a new leaf with the given data",
	ArgsUsage: "<data>",
	Flags: []cli.Flag{
		&timestampFlag,
	},
}

var CombineCmd = cli.Command{
	Action:    withBoard(doCombine),
	Name:      "combine",
	Usage:     "adds a branch over two orphans",
	ArgsUsage: "<left> <right>",
}

var PublishCmd = cli.Command{
	Action: withBoard(doPublish),
	Name:   "publish",
	Usage:  "publishes a root over all current orphans",
	Flags: []cli.Flag{
		&metadataFlag,
	},
}

var CensorCmd = cli.Command{
	Action:    withBoard(doCensor),
	Name:      "censor",
	Usage:     "removes the payload of a leaf",
	ArgsUsage: "<hash>",
}

var VerifyCmd = cli.Command{
	Action: withBoard(doVerify),
	Name:   "verify",
	Usage:  "checks the structural consistency of the board",
}

var ExportCmd = cli.Command{
	Action: withBoard(doExport),
	Name:   "export",
	Usage:  "exports all reachable records as JSON lines",
	Flags: []cli.Flag{
		&outputFlag,
	},
}

func doInfo(_ *cli.Context, env *env) error {
	roots, err := env.board.ListPublishedRoots()
	if err != nil {
		return err
	}
	orphans, err := env.board.ListOrphans()
	if err != nil {
		return err
	}
	head := "-"
	if len(roots) > 0 {
		head = roots[len(roots)-1].String()
	}
	fmt.Fprintf(env.out, "variant: %s\n", env.params.Variant)
	fmt.Fprintf(env.out, "roots:   %d\n", len(roots))
	fmt.Fprintf(env.out, "head:    %s\n", head)
	fmt.Fprintf(env.out, "orphans: %d\n", len(orphans))
	return nil
}

func doRoots(_ *cli.Context, env *env) error {
	roots, err := env.board.ListPublishedRoots()
	if err != nil {
		return err
	}
	return printHashes(env.out, roots)
}

func doOrphans(_ *cli.Context, env *env) error {
	orphans, err := env.board.ListOrphans()
	if err != nil {
		return err
	}
	return printHashes(env.out, orphans)
}

func doGet(context *cli.Context, env *env) error {
	hashes, err := parseHashes(context, 1)
	if err != nil {
		return err
	}
	record, err := env.board.GetRecord(hashes[0])
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: %v", board.ErrNotFound, hashes[0])
	}
	encoder := json.NewEncoder(env.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(board.NewExportedRecord(hashes[0], record))
}

func doAddLeaf(context *cli.Context, env *env) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one data argument")
	}
	timestamp := context.Uint64(timestampFlag.Name)
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}
	hash, err := addLeaf(env.board, timestamp, []byte(context.Args().First()))
	if err != nil {
		return err
	}
	env.log.Printf("added leaf %v", hash)
	return printHashes(env.out, []common.Hash{hash})
}

func doCombine(context *cli.Context, env *env) error {
	hashes, err := parseHashes(context, 2)
	if err != nil {
		return err
	}
	hash, err := combine(env.board, hashes[0], hashes[1])
	if err != nil {
		return err
	}
	env.log.Printf("added branch %v over %v and %v", hash, hashes[0], hashes[1])
	return printHashes(env.out, []common.Hash{hash})
}

func doPublish(context *cli.Context, env *env) error {
	hash, err := publishOrphans(env.board, []byte(context.String(metadataFlag.Name)))
	if err != nil {
		return err
	}
	env.log.Printf("published root %v", hash)
	return printHashes(env.out, []common.Hash{hash})
}

func doCensor(context *cli.Context, env *env) error {
	hashes, err := parseHashes(context, 1)
	if err != nil {
		return err
	}
	if err := env.board.CensorLeaf(hashes[0]); err != nil {
		return err
	}
	env.log.Printf("censored leaf %v", hashes[0])
	return nil
}

func doVerify(_ *cli.Context, env *env) error {
	if err := board.Verify(env.board); err != nil {
		return err
	}
	fmt.Fprintln(env.out, "board is consistent")
	return nil
}

func doExport(context *cli.Context, env *env) (err error) {
	out := env.out
	if path := context.String(outputFlag.Name); path != "" {
		file, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = errors.Join(err, file.Close())
		}()
		out = file
	}
	return board.Export(context.Context, env.board, out)
}

func addLeaf(b board.Board, timestamp uint64, data []byte) (common.Hash, error) {
	hash := leafHash(timestamp, data)
	return hash, b.Commit(new(board.Transaction).AddLeaf(hash, timestamp, data))
}

func combine(b board.Board, left, right common.Hash) (common.Hash, error) {
	hash := branchHash(left, right)
	return hash, b.Commit(new(board.Transaction).AddBranch(hash, left, right))
}

// publishOrphans publishes a new root adopting every current orphan.
func publishOrphans(b board.Board, metadata []byte) (common.Hash, error) {
	roots, err := b.ListPublishedRoots()
	if err != nil {
		return common.Hash{}, err
	}
	orphans, err := b.ListOrphans()
	if err != nil {
		return common.Hash{}, err
	}
	hash := rootHash(uint64(len(roots)), orphans, metadata)
	return hash, b.Commit(new(board.Transaction).AddRoot(hash, metadata, orphans...))
}

func parseHashes(context *cli.Context, count int) ([]common.Hash, error) {
	if context.Args().Len() != count {
		return nil, fmt.Errorf("expected %d hash arguments, got %d", count, context.Args().Len())
	}
	res := make([]common.Hash, 0, count)
	for _, arg := range context.Args().Slice() {
		hash, err := common.HashFromString(arg)
		if err != nil {
			return nil, err
		}
		res = append(res, hash)
	}
	return res, nil
}

func printHashes(out io.Writer, hashes []common.Hash) error {
	for _, hash := range hashes {
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}
