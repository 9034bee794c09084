// Package dot is a small real-time application core for [Ebitengine]: an
// owning 3D scene graph, named scenes that can be switched and reloaded, and
// a cooperative coroutine scheduler.
//
// # Quick start
//
// Everything hangs off an [Engine]. Register scenes by name and hand the
// engine to [Run], which creates a window and game loop for you:
//
//	e := dot.NewEngine(dot.EngineConfig{Logger: dot.NewLogger(nil, log.InfoLevel)})
//	e.Scenes.NewScene("Default", func(s *dot.Scene) {
//		cube := dot.NewSpatial("cube")
//		cube.OnDraw = dot.CubeHook(mgl32.Vec3{}, dot.Vec3(2, 2, 2), dot.ColorBlue, dot.ColorRayWhite)
//		s.Root().AddChild(cube)
//	})
//	cfg := dot.DefaultConfig()
//	cfg.InitialScene = "Default"
//	dot.Run(e, cfg)
//
// For full control, call [Engine.Update] and [Engine.Draw] from your own
// [ebiten.Game].
//
// # Scene graph
//
// Every element is a [Node]. A node owns its children; removing or
// destroying a node destroys its whole subtree. Behavior is attached through
// function fields ([Node.OnStart], [Node.OnUpdate], [Node.OnDraw], ...)
// and [Node.Kind] selects built-in behavior: [KindSpatial] nodes carry a
// transform and [KindCamera] nodes drive a [Camera3D].
//
// Children update and draw in the order they were attached. References that
// must not keep a node alive, such as a camera's target, are held as a
// [NodeRef] and resolve to nil once the node is gone.
//
// # Scenes
//
// [SceneManager.ChangeSceneByName] makes a registered scene current and
// reloads it; the scene it replaces stays registered. [SceneManager.ChangeScene]
// destroys the outgoing scene. [SceneManager.UnloadAllScenes] tears
// everything down at exit.
//
// # Coroutines
//
// A coroutine is a [Step] function returning the [YieldInstruction] to wait
// on before it is called again, or nil when it is finished. [Sequence]
// chains stages:
//
//	e.StartCoroutine(dot.Sequence(
//		func() dot.YieldInstruction { return dot.WaitSeconds(2) },
//		func() dot.YieldInstruction { return dot.TweenPosition(cube, dot.Vec3(0, 3, 0), 1, ease.OutQuad) },
//	))
//
// Scene lifecycle events can be forwarded to a [Donburi] world with the
// adapter in dot/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package dot
