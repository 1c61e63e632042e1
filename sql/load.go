package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed games.sql
var gamesSQL string

// Function list for verification
var GamesFunctions = []string{
	"init_games",
	"insert_game",
	"select_game_by_game_id",
	"select_all_games",
	"select_similar_games_by_embedding",
	"update_game_pairings",
	"delete_game",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadGamesSql loads game-related SQL functions
func LoadGamesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, GamesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing games functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(gamesSQL)
	if err != nil {
		return fmt.Errorf("error executing games SQL: %w", err)
	}

	exist, err := checkFunctions(db, GamesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL games functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
