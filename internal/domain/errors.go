package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las fallas de reglas de negocio se devuelven como valores, nunca como panic;
// los handlers HTTP las mapean a códigos con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")

	// ErrPermissionDenied: el actor no tiene rol admin para una transición moderada.
	ErrPermissionDenied = errors.New("permiso denegado: se requiere rol admin")

	// ErrInvalidTransition: la entidad no está en el estado origen requerido,
	// o se reintenta una transición sobre un estado terminal. Sin mutación parcial.
	ErrInvalidTransition = errors.New("transición inválida para el estado actual")

	// ErrIntegrity: los totales almacenados no cumplen total == Σ subtotal.
	// Se reporta, nunca se corrige en silencio.
	ErrIntegrity = errors.New("inconsistencia de totales en la orden")
)
