package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/database"
	"github.com/kdkce/examreg-backend/internal/logger"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Seeding 50 Students ===")

	// All seeded accounts share the password "kdkce1234".
	hash, err := bcrypt.GenerateFromPassword([]byte("kdkce1234"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	names := []string{
		"Aarav Sharma", "Ishita Deshmukh", "Rohan Patil", "Sneha Kulkarni", "Vivek Joshi",
		"Priya Wankhede", "Aditya Deshpande", "Ananya Bhosale", "Karan Mehta", "Pooja Gaikwad",
		"Siddharth Rane", "Neha Chavan", "Amol Pawar", "Shruti Jadhav", "Nikhil Kale",
		"Rutuja Shinde", "Omkar Salunkhe", "Divya Thakur", "Harsh Agrawal", "Mrunal Sawant",
		"Pratik Bhagat", "Aishwarya More", "Tejas Khandekar", "Vaishnavi Dixit", "Sahil Khan",
		"Gayatri Apte", "Yash Wagh", "Komal Tiwari", "Akash Dubey", "Snehal Ingle",
		"Rahul Borkar", "Prachi Zade", "Shubham Meshram", "Anjali Raut", "Mayur Gawande",
		"Pallavi Katre", "Sumit Bansod", "Ritika Verma", "Gaurav Tembhare", "Shweta Lanjewar",
		"Ankit Choudhari", "Madhuri Selokar", "Pranav Hedau", "Kirti Wasnik", "Swapnil Dhoble",
		"Isha Bhoyar", "Atharva Lokhande", "Rashmi Nimje", "Kunal Dakhole", "Samiksha Fulzele",
	}

	successCount := 0
	for i, name := range names {
		parts := strings.SplitN(name, " ", 2)
		collegeID := fmt.Sprintf("KDK%04d", i+1)
		mobile := fmt.Sprintf("98%08d", 23450000+i)
		aadhar := fmt.Sprintf("%012d", 100000000000+int64(i))
		dob := time.Date(2004, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*7)

		student := &model.User{
			Username:     fmt.Sprintf("student%d", i+1),
			CollegeID:    &collegeID,
			Email:        fmt.Sprintf("student%d@%s", i+1, cfg.EmailDomain),
			Role:         model.RoleStudent,
			FirstName:    parts[0],
			LastName:     parts[1],
			MobileNo:     mobile,
			AadharNo:     &aadhar,
			DateOfBirth:  &dob,
			Address:      "Nagpur, Maharashtra",
			PasswordHash: string(hash),
		}

		if err := userRepo.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", name, collegeID, err)
		} else {
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
