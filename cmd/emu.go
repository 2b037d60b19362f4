/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
package cmd

import (
	"errors"
	"fmt"

	"github.com/hitzhangjie/zxdbg/cmd/debug"
	"github.com/hitzhangjie/zxdbg/pkg/dzrp"
	"github.com/hitzhangjie/zxdbg/pkg/emu"

	"github.com/spf13/cobra"
)

// emuCmd represents the emu command
var emuCmd = &cobra.Command{
	Use:   "emu [snapshot]",
	Short: "debug the in-process emulator target",
	Long: `debug the in-process emulator target, optionally loading a
.sna or .nex snapshot before the session starts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errors.New("usage: emu [snapshot]")
		}

		m := emu.NewMachine()
		remote := dzrp.New(m)
		m.SetHandler(remote)

		cfg, err := remote.Config()
		if err != nil {
			return err
		}
		fmt.Printf("connected: %s (DZRP %s)\n", cfg.Program, cfg.DZRPVersion)

		if len(args) == 1 {
			if err := remote.LoadBin(args[0]); err != nil {
				return err
			}
			fmt.Printf("loaded %s\n", args[0])
		}

		debug.Target = remote
		return nil
	},
	PostRun: func(cmd *cobra.Command, args []string) {
		debug.CurrentSession = debug.NewDebugSession()
		debug.CurrentSession.Start()
	},
}

func init() {
	rootCmd.AddCommand(emuCmd)
}
