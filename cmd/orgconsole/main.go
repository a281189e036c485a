// Command orgconsole is an operator CLI for the organization store. Every
// command goes through the console controllers, so writes follow the same
// refetch-after-mutation flow as the admin console.
package main

func main() {
	Execute()
}
