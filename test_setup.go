package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Test MongoDB
	fmt.Println("Testing MongoDB connection...")
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	fmt.Println("✅ MongoDB connected successfully!")

	// Test JWT secret
	fmt.Println("\nChecking JWT secret...")
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET missing in .env — the API refuses to start without it")
	}
	fmt.Println("✅ JWT secret configured!")

	fmt.Println("\n🎉 All systems ready! You can start the API.")
	fmt.Printf("  Database: %s\n", os.Getenv("MONGO_DB"))
	fmt.Printf("  Port: %s\n", os.Getenv("PORT"))
}
