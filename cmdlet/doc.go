// Package cmdlet adds dependency injection to command-style units of work.
//
// A host drives a Cmdlet through four stages. Each stage is a fixed method on
// Cmdlet that calls exactly one hook slot:
//
//	Stage    Outer method        Hook slot       Target method
//	Begin    BeginProcessing     PreProcess      CmdletPreProcessor
//	                             (injection)
//	                             Begin           BeginCmdletProcessing
//	Process  ProcessRecord       ProcessRecord   ProcessCmdletRecord
//	End      EndProcessing       End             EndCmdletProcessing
//	Stop     StopProcessing      Stop            StopCmdletProcessing
//
// Hooks come from the optional interfaces implemented by the target and can be
// overridden with WithHooks. Injection is driven by a di.Plan and a
// di.Resolver; it always completes before the Begin hook runs and never runs
// before PreProcess.
package cmdlet
