// axionctl herramientas de operación: migraciones, alta del primer administrador y
// utilidades de teléfono.
//
// Uso:
//
//	axionctl migrate [up|down|status|version|redo]
//	axionctl seed-admin --email a@b.com --password ******** [--name Ana]
//	axionctl phone "(11) 98888-7777" "Olá!"
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "aviso: .env no se pudo leer: %v\n", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
