package cmd

import (
	"log"

	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database"
	"github.com/spf13/cobra"
)

// migrateCmd 手动执行数据库迁移
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitConfig()

		provider, err := database.NewGormProvider(config.Get())
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer provider.Close()

		if err := database.Migrate(provider); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("Database migration completed")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
