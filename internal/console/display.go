package console

import "fmt"

func (h *Handler) mostrarMenuPrincipal() {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "╔════════════════════════════════════════════════════╗")
	fmt.Fprintln(h.out, "║           SISTEMA DE GESTIÓN DE CLÍNICA            ║")
	fmt.Fprintln(h.out, "╠════════════════════════════════════════════════════╣")
	fmt.Fprintln(h.out, "║ 1. Crear Paciente (con Historia Clínica)           ║")
	fmt.Fprintln(h.out, "║ 2. Listar todos los Pacientes                      ║")
	fmt.Fprintln(h.out, "║ 3. Buscar Paciente por DNI                         ║")
	fmt.Fprintln(h.out, "║ 4. Actualizar Paciente                             ║")
	fmt.Fprintln(h.out, "║ 5. Actualizar Historia Clínica de un Paciente      ║")
	fmt.Fprintln(h.out, "║ 6. Listar todas las Historias Clínicas             ║")
	fmt.Fprintln(h.out, "║ 7. Eliminar Paciente (Baja Lógica)                 ║")
	fmt.Fprintln(h.out, "╠════════════════════════════════════════════════════╣")
	fmt.Fprintln(h.out, "║ 0. Salir                                           ║")
	fmt.Fprintln(h.out, "╚════════════════════════════════════════════════════╝")
	fmt.Fprint(h.out, " ➤ Ingrese una opción: ")
}
