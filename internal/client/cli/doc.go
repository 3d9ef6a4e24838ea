// Package cli implements the interactive forum client.
//
// The REPL reads one command per line. Commands that change forum content
// need a session: run "login" first. The access token lives only in memory
// and is revoked on "logout" or when the program exits.
//
//	register                 create an account
//	login                    authenticate (password is read without echo)
//	logout                   revoke the current token
//	whoami                   show the user behind the current token
//	list [tag|-] [text...]   list questions, optionally by tag and title text
//	mine                     list my questions
//	show <questionid>        show a question with its answers
//	ask                      post a question
//	edit <questionid>        edit one of my questions
//	delete <questionid>      delete one of my questions and its answers
//	answer <questionid>      answer a question
//	editanswer <answerid>    edit one of my answers
//	delanswer <answerid>     delete one of my answers
//	help, exit | quit
package cli
