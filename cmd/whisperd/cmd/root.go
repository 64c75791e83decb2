package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/anashammo/whisper-ui/cmd/whisperd/cmd/serve"
	"github.com/anashammo/whisper-ui/cmd/whisperd/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whisperd",
	Short: "Voice transcription service with Whisper and LLM enhancement",
	Long: `whisperd runs the voice transcription web service.
- Uploads are validated, stored and transcribed with a Whisper engine
- Transcripts can be polished by an LLM, including Arabic Tashkeel
- History is persisted to sqlite or postgres and exportable as xlsx.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
