package entity

// Identity snapshot de la identidad autenticada {id, role, status}.
// Se pasa explícitamente a las funciones de política y sesión en lugar de
// leerse de estado ambiente, para mantenerlas puras y testeables.
// El snapshot puede quedar obsoleto; se resuelve re-consultando tras cada
// mutación (refetch-on-write), nunca adivinando.
type Identity struct {
	ID     string
	Role   Role
	Status ModerationStatus
}

// IdentityOf construye el snapshot a partir de una cuenta persistida.
func IdentityOf(a *Account) Identity {
	return Identity{ID: a.ID, Role: a.Role, Status: a.Status}
}
