// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/isoglide/pkg/engine"
	"github.com/opd-ai/isoglide/pkg/event"
	"github.com/opd-ai/isoglide/pkg/logging"
)

// sprite is an entity drawn by the render system.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// DemoScene is the playable scene: one character in an arena.
type DemoScene struct {
	ctx    context.Context
	world  *ecs.World
	sim    *engine.Sim
	logger *logging.Logger

	assets    *AssetManager
	character *CharacterSystem
	camera    *CameraSystem

	// Pixel size of one world unit on screen
	pixelsPerUnit float64
}

// NewDemoScene creates a scene around an assembled simulation.
func NewDemoScene(sim *engine.Sim, logger *logging.Logger, pixelsPerUnit float64) *DemoScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DemoScene{
		ctx:           logging.WithSessionID(context.Background(), ""),
		sim:           sim,
		logger:        logger,
		pixelsPerUnit: pixelsPerUnit,
		world:         &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *DemoScene) Type() string {
	return "DemoScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *DemoScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *DemoScene) Setup(u engo.Updater) {
	scene.world, _ = u.(*ecs.World)
	if scene.world == nil {
		scene.world = &ecs.World{}
	}

	common.SetBackground(color.RGBA{24, 26, 34, 255})
	SetupInputBindings()

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(); err != nil {
		panic("Failed to load sprites: " + err.Error())
	}

	render := &common.RenderSystem{}
	scene.world.AddSystem(render)

	scene.addBlocks(render)

	scene.character = NewCharacterSystem(scene.sim, EngineInput{}, scene.pixelsPerUnit)
	body := scene.newSprite(SpriteCharacter, 1, 2, 2)
	canopy := scene.newSprite(SpriteCanopy, 2, 1, 3)
	render.Add(&body.BasicEntity, &body.RenderComponent, &body.SpaceComponent)
	render.Add(&canopy.BasicEntity, &canopy.RenderComponent, &canopy.SpaceComponent)
	scene.character.AddBody(&body.BasicEntity, &body.RenderComponent, &body.SpaceComponent)
	scene.character.AddCanopy(&canopy.BasicEntity, &canopy.RenderComponent, &canopy.SpaceComponent)
	scene.world.AddSystem(scene.character)

	scene.camera = NewCameraSystem(scene.sim.Focus, EngineInput{}, MailboxCamera{}, scene.pixelsPerUnit)
	scene.world.AddSystem(scene.camera)

	scene.subscribeToEvents()
	scene.sim.Start()
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *DemoScene) Exit() {
	scene.sim.Stop()
	scene.logger.Info(scene.ctx, "demo closed", "ticks", scene.sim.Snapshot().Tick)
}

// newSprite creates a sprite stretched to a size in world units.
func (scene *DemoScene) newSprite(name string, width, height float64, zIndex float32) *sprite {
	w := float32(width * scene.pixelsPerUnit)
	h := float32(height * scene.pixelsPerUnit)
	px := SpriteImage(name).Bounds()

	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: scene.assets.Sprite(name),
		Scale:    engo.Point{X: w / float32(px.Dx()), Y: h / float32(px.Dy())},
	}
	s.RenderComponent.SetZIndex(zIndex)
	s.SpaceComponent = common.SpaceComponent{Width: w, Height: h}
	return s
}

// addBlocks draws every configured platform.
func (scene *DemoScene) addBlocks(render *common.RenderSystem) {
	cfg := scene.sim.Config.Arena
	for _, b := range cfg.Blocks {
		topLeft := Project(mgl64.Vec3{b.Min.X(), b.Min.Y() + b.Size.Y(), 0}, scene.pixelsPerUnit)
		bottomRight := Project(mgl64.Vec3{b.Min.X() + b.Size.X(), b.Min.Y(), 0}, scene.pixelsPerUnit)
		w := bottomRight.X - topLeft.X
		h := bottomRight.Y - topLeft.Y

		s := &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{
			Drawable: scene.assets.Sprite(SpriteBlock),
			// the block sprite is 4x4 pixels
			Scale: engo.Point{X: w / 4, Y: h / 4},
		}
		s.SpaceComponent = common.SpaceComponent{
			Position: topLeft,
			Width:    w,
			Height:   h,
		}
		render.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
}

// subscribeToEvents logs locomotion transitions.
func (scene *DemoScene) subscribeToEvents() {
	for _, t := range []event.Type{event.Jumped, event.Landed, event.GlideStarted, event.GlideStopped} {
		scene.sim.EventBus.Subscribe(t, func(e event.Event) {
			if le, ok := e.(*event.LocomotionEvent); ok {
				scene.logger.Debug(scene.ctx, "demo event",
					"event", string(le.GetType()),
					"phase", le.Phase,
				)
			}
		})
	}
}
