package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogo/internal/domain"
)

var (
	uploadUser    string
	uploadCatalog string
	uploadType    string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file for a catalog row",
	Long: "Upload a file and print its URL. With s3.enabled=false the\n" +
		"upload is simulated and a placeholder URL is returned.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ft := domain.FileType(uploadType)
		switch ft {
		case domain.FileTypeImage, domain.FileTypeDocument,
			domain.FileTypeMultimedia, domain.FileTypePDF:
		default:
			return fmt.Errorf("unknown file type %q", uploadType)
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.uploadService(cmd.Context())
		if err != nil {
			return err
		}

		url, err := svc.Upload(cmd.Context(), args[0], uploadUser, uploadCatalog, ft)
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadUser, "user", "", "owner user id")
	uploadCmd.Flags().StringVar(&uploadCatalog, "catalog", "", "catalog id")
	uploadCmd.Flags().StringVar(&uploadType, "type", "document", "image|document|multimedia|pdf")
}
