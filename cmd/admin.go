package cmd

import (
	"log"

	"github.com/artfolio/gallery-backend/config"
	"github.com/artfolio/gallery-backend/database"
	"github.com/artfolio/gallery-backend/database/repo/accounts"
	cryptopackage "github.com/artfolio/gallery-backend/utils/crypto"
	"github.com/spf13/cobra"
)

var resetPassword string

// adminCmd 管理员账户维护命令
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin account maintenance",
}

// adminResetCmd 重置管理员密码
var adminResetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset the admin password",
	Run: func(cmd *cobra.Command, args []string) {
		if len(resetPassword) < 6 {
			log.Fatal("Password must be at least 6 characters long")
		}

		config.InitConfig()
		provider, err := database.NewGormProvider(config.Get())
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer provider.Close()

		repo := accounts.NewRepository(provider.DB())
		user, err := repo.GetUserByUsername("admin")
		if err != nil {
			log.Fatalf("Failed to load admin user: %v", err)
		}

		hashed, err := cryptopackage.GenerateFromPassword(resetPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user.Password = hashed
		if err := repo.UpdateUser(user); err != nil {
			log.Fatalf("Failed to update admin user: %v", err)
		}

		// 强制所有已登录会话失效
		devices := accounts.NewDeviceRepository(provider.DB())
		if err := devices.DeleteDevicesByUser(user.ID); err != nil {
			log.Printf("Warning: failed to revoke existing sessions: %v", err)
		}

		log.Println("Admin password updated")
	},
}

func init() {
	adminResetCmd.Flags().StringVar(&resetPassword, "password", "", "new admin password")
	_ = adminResetCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminResetCmd)
	rootCmd.AddCommand(adminCmd)
}
