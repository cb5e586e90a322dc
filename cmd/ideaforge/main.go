package main

import "ideaforge-backend/internal/commands"

func main() {
	commands.Execute()
}
