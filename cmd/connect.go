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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// connectCmd represents the connect command
var connectCmd = &cobra.Command{
	Use:   "connect [host:port]",
	Short: "debug a remote DZRP target over a socket",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return errors.New("usage: connect [host:port]")
		}

		addr := viper.GetString("addr")
		if len(args) == 1 {
			addr = args[0]
		}

		// TODO implement the DZRP socket codec; the session layer only
		// needs a dzrp.Commander plus break-notification delivery.
		return fmt.Errorf("socket transport for %s not implemented yet, use 'zxdbg emu'", addr)
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
}
