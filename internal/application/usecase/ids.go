package usecase

import "github.com/google/uuid"

// validID informa si id es un UUID. Las claves primarias son uuid en la base: un id
// malformado no puede existir y no debe llegar a la consulta.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
