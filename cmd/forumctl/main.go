package main

import "forum/backend/cmd/forumctl/commands"

func main() {
	commands.Execute()
}
