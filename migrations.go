package main

import "log"

// initDB creates the schema. Everything is CREATE IF NOT EXISTS so startup
// is idempotent against an existing database.
func initDB() {
	// User table (admin login)
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0
	);`)
	if err != nil {
		log.Fatalf("Failed to create users table: %v", err)
	}

	// Likes table: one counter per verbatim display name
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS likes (
		song_name TEXT PRIMARY KEY NOT NULL,
		count INTEGER NOT NULL DEFAULT 0
	);`)
	if err != nil {
		log.Fatalf("Failed to create likes table: %v", err)
	}

	// Feedback table
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		contact TEXT,
		created_at TEXT NOT NULL
	);`)
	if err != nil {
		log.Fatalf("Failed to create feedback table: %v", err)
	}

	seedAdminUser()
}

// seedAdminUser creates the default admin account on first start. The
// password comes from ADMIN_PASSWORD so deployments never run with the
// literal default unnoticed: we log loudly when the fallback is used.
func seedAdminUser() {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		log.Printf("[ERROR] seedAdminUser: could not count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	password := getEnv("ADMIN_PASSWORD", "admin")
	hashedPassword, err := hashPassword(password)
	if err != nil {
		log.Printf("[ERROR] seedAdminUser: could not hash password: %v", err)
		return
	}
	if _, err := db.Exec("INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)", "admin", hashedPassword, true); err != nil {
		log.Println("Could not create default admin user:", err)
		return
	}
	if password == "admin" {
		log.Println("Default admin user created with password 'admin' - set ADMIN_PASSWORD in production")
	} else {
		log.Println("Default admin user created")
	}
}
