/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/Aleksandr-Gamble/scale-serp/cmd"

// @title           Scale SERP API
// @version         1.0.0
// @description     Strictly typed gateway for the ScaleSERP search API
// @termsOfService  http://swagger.io/terms/
// @contact.name    API Support
// @contact.url     https://github.com/Aleksandr-Gamble/scale-serp
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
